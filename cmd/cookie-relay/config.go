package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the cookie-relay configuration.
type Config struct {
	ConfigFile    string        `yaml:"-"`
	LogLevel      string        `yaml:"log_level"`
	TraceLog      string        `yaml:"trace_log"`
	StateFile     string        `yaml:"state_file"`
	SeedFile      string        `yaml:"seed"`
	Interactive   bool          `yaml:"interactive"`
	EvictInterval time.Duration `yaml:"evict_interval"`
	MaxPerDomain  int           `yaml:"max_cookies_per_domain"`

	// Watch lists subscriptions created at startup. Their changes are logged.
	Watch []WatchEntry `yaml:"watch"`
}

// WatchEntry is a startup subscription. An empty Name watches every cookie
// visible to URL.
type WatchEntry struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// flagNames maps flag names to the yaml keys they override.
var flagNames = map[string]string{
	"log-level":      "log_level",
	"trace-log":      "trace_log",
	"state-file":     "state_file",
	"seed":           "seed",
	"interactive":    "interactive",
	"evict-interval": "evict_interval",
	"max-per-domain": "max_cookies_per_domain",
}

// loadConfigFile reads a YAML config file into cfg. Values of flags named
// in explicit keep their command-line value.
func loadConfigFile(path string, cfg *Config, explicit map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	inFile := func(flagName string) bool {
		if explicit[flagName] {
			return false
		}
		_, ok := raw[flagNames[flagName]]
		return ok
	}

	if inFile("log-level") {
		cfg.LogLevel = file.LogLevel
	}
	if inFile("trace-log") {
		cfg.TraceLog = file.TraceLog
	}
	if inFile("state-file") {
		cfg.StateFile = file.StateFile
	}
	if inFile("seed") {
		cfg.SeedFile = file.SeedFile
	}
	if inFile("interactive") {
		cfg.Interactive = file.Interactive
	}
	if inFile("evict-interval") {
		cfg.EvictInterval = file.EvictInterval
	}
	if inFile("max-per-domain") {
		cfg.MaxPerDomain = file.MaxPerDomain
	}
	cfg.Watch = append(cfg.Watch, file.Watch...)
	return nil
}

// validate checks the configuration.
func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", c.LogLevel)
	}
	if c.EvictInterval < 0 {
		return fmt.Errorf("evict interval must not be negative")
	}
	if c.MaxPerDomain < 0 {
		return fmt.Errorf("max cookies per domain must not be negative")
	}
	for i, w := range c.Watch {
		if w.URL == "" {
			return fmt.Errorf("watch entry %d: url required", i)
		}
	}
	return nil
}
