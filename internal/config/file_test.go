package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile_SourcesAndFormats(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json via -config", func(t *testing.T) {
		path := writeTempJSON(t, "", "", map[string]any{
			"base_url":     "http://localhost:9000",
			"username":     "me",
			"product_code": "SHOP",
			"timeout":      "15s",
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseFile(cfg)

		assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
		assert.Equal(t, "me", cfg.API.Username)
		assert.Equal(t, "SHOP", cfg.API.ProductCode)
		assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	})

	t.Run("yaml via -c", func(t *testing.T) {
		path := writeTempFile(t, "cheddar.yaml", "username: yaml-user\npassword: secret\ntimeout: 2m\nlog_level: debug\nmetrics_addr: ':9464'\n")
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "yaml-user", cfg.API.Username)
		assert.Equal(t, "secret", cfg.API.Password)
		assert.Equal(t, 2*time.Minute, cfg.API.Timeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, ":9464", cfg.MetricsAddr)
		assert.Equal(t, "https://cheddargetter.com", cfg.API.BaseURL)
	})

	t.Run("no flag leaves config unchanged", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{LogLevel: "info"}
		parseFile(cfg)

		assert.Equal(t, &Config{LogLevel: "info"}, cfg)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "nope.json")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("malformed json panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", writeTempFile(t, "bad.json", "{")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("bad duration panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", writeTempFile(t, "bad.yml", "timeout: forever\n")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}

func TestDuration_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    time.Duration
		wantErr bool
	}{
		{"string", `"1m30s"`, 90 * time.Second, false},
		{"nanoseconds", `1000000000`, time.Second, false},
		{"bad string", `"later"`, 0, true},
		{"wrong type", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run("json "+tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.json), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})

		t.Run("yaml "+tt.name, func(t *testing.T) {
			var d Duration
			err := yaml.Unmarshal([]byte(tt.json), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}
