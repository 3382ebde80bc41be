// Package config loads panelctl settings from ~/.panelctl/config.yaml with
// environment overrides. The file is optional; defaults point at a local
// developer-panel backend.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the local backend, including the API router prefix.
const DefaultBaseURL = "http://localhost:8000/developer_panel"

// DefaultTimeout applies when the config names none.
const DefaultTimeout = 30 * time.Second

// Config holds every runtime setting the console and CLI share.
type Config struct {
	// APIBaseURL is the developer-panel API root, prefix included.
	APIBaseURL string `yaml:"api_base_url"`
	// RequestTimeout bounds each request. Zero means DefaultTimeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// Debug enables the category file logger under ~/.panelctl/logs/.
	Debug bool `yaml:"debug"`
	// DarkMode forces the dark theme regardless of terminal detection.
	DarkMode bool `yaml:"dark_mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:     DefaultBaseURL,
		RequestTimeout: DefaultTimeout,
	}
}

// Load reads the user config file (if any), layering file values over
// defaults and environment overrides over both.
func Load() (Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, ".panelctl", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults()
	return cfg, nil
}

// LoadFile reads an explicit config path. Used by tests and the --config
// flag.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnvOverrides()
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("PANELCTL_API_URL"); url != "" {
		c.APIBaseURL = url
	}
	if raw := os.Getenv("PANELCTL_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			c.RequestTimeout = d
		}
	}
	if os.Getenv("PANELCTL_DEBUG") == "1" {
		c.Debug = true
	}
	if os.Getenv("PANELCTL_DARK_MODE") == "1" {
		c.DarkMode = true
	}
}

func (c *Config) fillDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultBaseURL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultTimeout
	}
}
