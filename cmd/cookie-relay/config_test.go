package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
trace_log: /tmp/trace.rlog
state_file: /tmp/jar.cbor
evict_interval: 30s
max_cookies_per_domain: 50
watch:
  - url: https://example.com/
    name: session
  - url: example.org
`)

	cfg := Config{LogLevel: "info"}
	require.NoError(t, loadConfigFile(path, &cfg, nil))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/trace.rlog", cfg.TraceLog)
	assert.Equal(t, "/tmp/jar.cbor", cfg.StateFile)
	assert.Equal(t, 30*time.Second, cfg.EvictInterval)
	assert.Equal(t, 50, cfg.MaxPerDomain)
	assert.Equal(t, []WatchEntry{
		{URL: "https://example.com/", Name: "session"},
		{URL: "example.org"},
	}, cfg.Watch)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfigFileExplicitFlagsWin(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nstate_file: /from/file\n")

	cfg := Config{LogLevel: "warn", StateFile: "/from/flag"}
	require.NoError(t, loadConfigFile(path, &cfg, map[string]bool{"log-level": true}))

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/from/file", cfg.StateFile)
}

func TestLoadConfigFileKeepsUnsetValues(t *testing.T) {
	path := writeConfig(t, "trace_log: t.rlog\n")

	cfg := Config{LogLevel: "info", EvictInterval: time.Minute}
	require.NoError(t, loadConfigFile(path, &cfg, nil))

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.EvictInterval)
	assert.Equal(t, "t.rlog", cfg.TraceLog)
}

func TestLoadConfigFileErrors(t *testing.T) {
	var cfg Config
	assert.Error(t, loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg, nil))
	assert.Error(t, loadConfigFile(writeConfig(t, "log_level: [unclosed\n"), &cfg, nil))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", Config{LogLevel: "info"}, true},
		{"bad level", Config{LogLevel: "verbose"}, false},
		{"negative interval", Config{LogLevel: "info", EvictInterval: -time.Second}, false},
		{"negative limit", Config{LogLevel: "info", MaxPerDomain: -1}, false},
		{"watch without url", Config{LogLevel: "info", Watch: []WatchEntry{{Name: "a"}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
