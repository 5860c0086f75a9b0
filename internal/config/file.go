package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/cheddargetter/internal/flagx"
)

// FileConfig is a DTO used exclusively for config file unmarshalling.
// Zero values leave the corresponding Config field untouched.
type FileConfig struct {
	BaseURL     string   `json:"base_url" yaml:"base_url"`
	Username    string   `json:"username" yaml:"username"`
	Password    string   `json:"password" yaml:"password"`
	ProductCode string   `json:"product_code" yaml:"product_code"`
	Timeout     Duration `json:"timeout" yaml:"timeout"`
	LogLevel    string   `json:"log_level" yaml:"log_level"`
	MetricsAddr string   `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. Files ending in .yaml or .yml are read as YAML, anything else as
// JSON. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setIf(&cfg.API.BaseURL, fc.BaseURL)
	setIf(&cfg.API.Username, fc.Username)
	setIf(&cfg.API.Password, fc.Password)
	setIf(&cfg.API.ProductCode, fc.ProductCode)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.MetricsAddr, fc.MetricsAddr)
	if fc.Timeout.Duration > 0 {
		cfg.API.Timeout = fc.Timeout.Duration
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
