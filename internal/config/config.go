// Package config loads the optional gitsnap configuration file. The file lets
// endpoints and timeouts be overridden, which matters mostly for mirrors and
// tests; a missing file yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the default config file location when set.
const EnvConfigPath = "GITSNAP_CONFIG"

// Config represents the gitsnap configuration
type Config struct {
	APIBaseURL      string `toml:"api_base_url"`
	CodeloadBaseURL string `toml:"codeload_base_url"`
	UserAgent       string `toml:"user_agent"`

	// Timeouts in seconds for the metadata lookup and the snapshot download
	MetadataTimeoutSeconds int `toml:"metadata_timeout_seconds"`
	DownloadTimeoutSeconds int `toml:"download_timeout_seconds"`
}

// DefaultConfig provides default configuration values
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:             "https://api.github.com",
		CodeloadBaseURL:        "https://codeload.github.com",
		UserAgent:              "gitsnap/1.0",
		MetadataTimeoutSeconds: 30,
		DownloadTimeoutSeconds: 60,
	}
}

// DefaultPath returns the conventional config file location, honoring
// XDG_CONFIG_HOME when set.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gitsnap", "config.toml")
}

// Load loads configuration from a file. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) || path == "" {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.MergeDefaults()
	return cfg, nil
}

// MergeDefaults merges default values for unset fields
func (c *Config) MergeDefaults() {
	def := DefaultConfig()
	if c.APIBaseURL == "" {
		c.APIBaseURL = def.APIBaseURL
	}
	if c.CodeloadBaseURL == "" {
		c.CodeloadBaseURL = def.CodeloadBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.MetadataTimeoutSeconds <= 0 {
		c.MetadataTimeoutSeconds = def.MetadataTimeoutSeconds
	}
	if c.DownloadTimeoutSeconds <= 0 {
		c.DownloadTimeoutSeconds = def.DownloadTimeoutSeconds
	}
}
