package config

import (
	"os"
	"strconv"
	"time"
)

const (
	EnvBaseURL     = "CHEDDAR_URL"
	EnvUsername    = "CHEDDAR_USERNAME"
	EnvPassword    = "CHEDDAR_PASSWORD"
	EnvProductCode = "CHEDDAR_PRODUCT_CODE"
	EnvTimeout     = "CHEDDAR_TIMEOUT"
	EnvLogLevel    = "CHEDDAR_LOG_LEVEL"
	EnvMetricsAddr = "CHEDDAR_METRICS_ADDR"
)

// parseEnv overlays Config with CHEDDAR_* variables. CHEDDAR_TIMEOUT is in
// seconds. Panics on a malformed timeout.
func parseEnv(cfg *Config) {
	lookup := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	lookup(EnvBaseURL, &cfg.API.BaseURL)
	lookup(EnvUsername, &cfg.API.Username)
	lookup(EnvPassword, &cfg.API.Password)
	lookup(EnvProductCode, &cfg.API.ProductCode)
	lookup(EnvLogLevel, &cfg.LogLevel)
	lookup(EnvMetricsAddr, &cfg.MetricsAddr)

	if v, ok := os.LookupEnv(EnvTimeout); ok && v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.API.Timeout = time.Duration(secs) * time.Second
	}
}
