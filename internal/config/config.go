package config

import (
	"github.com/dmitrijs2005/cheddargetter/client"
)

// Config holds runtime settings for the cheddar CLI.
//
// Fields:
//   - API: transport settings handed to client.New.
//   - LogLevel: debug, info, warn or error.
//   - MetricsAddr: when set, Prometheus metrics are served at
//     http://<MetricsAddr>/metrics while the CLI runs.
type Config struct {
	API         client.Config
	LogLevel    string
	MetricsAddr string
}

// LoadDefaults populates c with sensible defaults. Credentials stay empty.
func (c *Config) LoadDefaults() {
	c.API.LoadDefaults()
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if any), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
