package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cheddargetter/client"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBaseURL, EnvUsername, EnvPassword, EnvProductCode, EnvTimeout, EnvLogLevel, EnvMetricsAddr} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, client.DefaultBaseURL, c.API.BaseURL)
	assert.Equal(t, client.DefaultTimeout, c.API.Timeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.API.Username)
	assert.Empty(t, c.API.Password)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	clearEnv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cheddar"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, client.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"username":     "file-user",
		"password":     "file-pass",
		"product_code": "FILE",
		"log_level":    "warn",
	})
	t.Setenv(EnvProductCode, "ENV")
	t.Setenv(EnvLogLevel, "error")
	os.Args = []string{"cheddar", "-c", path, "-l", "debug"}

	cfg := LoadConfig()

	assert.Equal(t, "file-user", cfg.API.Username)
	assert.Equal(t, "file-pass", cfg.API.Password)
	assert.Equal(t, "ENV", cfg.API.ProductCode)
	assert.Equal(t, "debug", cfg.LogLevel)
}
