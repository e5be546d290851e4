// ABOUTME: Tests for configuration loading.
// ABOUTME: Covers defaults, YAML overlay, and reminder time parsing.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	if cfg.DBPath == "" {
		t.Error("expected default db path")
	}
	if cfg.CacheDir == "" {
		t.Error("expected default cache dir")
	}
	if cfg.ShellVersion != "v1" {
		t.Errorf("expected default shell version v1, got %q", cfg.ShellVersion)
	}
}

func TestLoadFromOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `db_path: /tmp/custom.db
shell_origin: http://localhost:9999
shell_version: v7
reminders:
  - "08:00"
  - "19:30"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("expected custom db path, got %q", cfg.DBPath)
	}
	if cfg.ShellOrigin != "http://localhost:9999" {
		t.Errorf("expected custom origin, got %q", cfg.ShellOrigin)
	}
	if cfg.ShellVersion != "v7" {
		t.Errorf("expected shell version v7, got %q", cfg.ShellVersion)
	}
	if len(cfg.Reminders) != 2 || cfg.Reminders[1] != "19:30" {
		t.Errorf("expected two reminders, got %v", cfg.Reminders)
	}
	// Unset fields keep defaults.
	if cfg.CacheDir == "" {
		t.Error("expected default cache dir to survive overlay")
	}
}

func TestLoadFromRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestParseReminder(t *testing.T) {
	hour, minute, err := ParseReminder("08:30")
	if err != nil {
		t.Fatalf("failed to parse reminder: %v", err)
	}
	if hour != 8 || minute != 30 {
		t.Errorf("expected 8:30, got %d:%d", hour, minute)
	}

	for _, bad := range []string{"", "8", "25:00", "12:60", "ab:cd", "12-30"} {
		if _, _, err := ParseReminder(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
