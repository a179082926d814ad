// Package config handles application configuration via TOML files.
// Configuration is stored at ~/.config/soundlist/config.toml and includes
// the site to scrape, HTTP settings, logging and TUI preferences.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	Site SiteConfig `toml:"site"`
	Log  LogConfig  `toml:"log"`
	TUI  TUIConfig  `toml:"tui"`
}

// SiteConfig holds the target site and request settings
type SiteConfig struct {
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration
func (s SiteConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LogConfig holds logging settings
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File enables rotating file output when non-empty.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// TUIConfig holds terminal UI preferences
type TUIConfig struct {
	LastUploader string `toml:"last_uploader"`
	SortByPlays  bool   `toml:"sort_by_plays"`
}

// Default returns the default configuration
func Default() Config {
	home, _ := os.UserHomeDir()

	return Config{
		Site: SiteConfig{
			BaseURL:        "https://soundgasm.net",
			TimeoutSeconds: 15,
			// UserAgent: empty uses the scraper's browser-like default
		},
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(home, ".local", "state", "soundlist", "soundlist.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "soundlist", "config.toml")
}

// Load reads config from the default path or returns defaults
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		// No config file, return defaults
		return cfg, nil
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes config to the default path
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes config to path, creating its directory
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
