// ABOUTME: Application configuration loaded from an XDG YAML file.
// ABOUTME: Handles defaults, paths, and reminder time parsing.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mealog/mealog/internal/db"
)

// Config holds mealog settings.
type Config struct {
	// DBPath is the SQLite file holding meal records.
	DBPath string `yaml:"db_path,omitempty"`

	// CacheDir is the directory for the offline asset cache.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// ShellOrigin is the base URL the viewer shell is fetched from.
	ShellOrigin string `yaml:"shell_origin,omitempty"`

	// ShellVersion tags the current shell generation; changing it
	// replaces the precache on the next activation.
	ShellVersion string `yaml:"shell_version,omitempty"`

	// Reminders lists daily reminder times as "HH:MM".
	Reminders []string `yaml:"reminders,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DBPath:       db.DefaultPath(),
		CacheDir:     defaultCacheDir(),
		ShellVersion: "v1",
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mealog")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads configuration from disk, returning defaults if the file
// does not exist.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from path, overlaying it onto defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = db.DefaultPath()
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	}
	return cfg, nil
}

// ParseReminder splits a "HH:MM" reminder time.
func ParseReminder(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid reminder time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid reminder hour %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid reminder minute %q", s)
	}
	return hour, minute, nil
}

func defaultCacheDir() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "mealog", "shell")
}
