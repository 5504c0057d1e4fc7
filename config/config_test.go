package config

import (
	"os"
	"testing"
	"time"

	"github.com/bond-kaneko/calcusmart/theme"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"CALC_THEME_FILE", "CALC_THEME_DEFAULT", "CALC_HISTORY_DB", "CALC_HISTORY_LIMIT", "CALC_RELOAD_DELAY", "CALC_MEMORY_INDICATOR", "CALC_POLL"} {
		// Setenv restores the original value on cleanup
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistoryLimit != 10 {
		t.Fatalf("history limit = %d, want 10", cfg.HistoryLimit)
	}
	if cfg.ReloadDelay != 500*time.Millisecond {
		t.Fatalf("reload delay = %s, want 500ms", cfg.ReloadDelay)
	}
	if cfg.MemoryIndicator != 2*time.Second {
		t.Fatalf("memory indicator = %s, want 2s", cfg.MemoryIndicator)
	}
	if cfg.ThemeFile == "" {
		t.Fatal("theme file should default to the home directory")
	}
	if cfg.DefaultTheme() != theme.Light {
		t.Fatalf("default theme = %v, want light", cfg.DefaultTheme())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CALC_THEME_FILE", "/tmp/calc-theme")
	t.Setenv("CALC_THEME_DEFAULT", "dark")
	t.Setenv("CALC_HISTORY_DB", "/tmp/history.db")
	t.Setenv("CALC_HISTORY_LIMIT", "25")
	t.Setenv("CALC_RELOAD_DELAY", "1s")
	t.Setenv("CALC_MEMORY_INDICATOR", "0s")
	t.Setenv("CALC_POLL", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ThemeFile != "/tmp/calc-theme" {
		t.Fatalf("theme file = %q, want %q", cfg.ThemeFile, "/tmp/calc-theme")
	}
	if cfg.DefaultTheme() != theme.Dark {
		t.Fatalf("default theme = %v, want dark", cfg.DefaultTheme())
	}
	if cfg.HistoryDB != "/tmp/history.db" {
		t.Fatalf("history db = %q, want %q", cfg.HistoryDB, "/tmp/history.db")
	}
	if cfg.HistoryLimit != 25 {
		t.Fatalf("history limit = %d, want 25", cfg.HistoryLimit)
	}
	if cfg.ReloadDelay != time.Second {
		t.Fatalf("reload delay = %s, want 1s", cfg.ReloadDelay)
	}
	if !cfg.Poll {
		t.Fatal("poll should be true")
	}
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	t.Setenv("CALC_THEME_FILE", "/tmp/calc-theme")
	t.Setenv("CALC_HISTORY_LIMIT", "ten")

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.ThemeFile = "/tmp/theme"

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero history limit", func(c *Config) { c.HistoryLimit = 0 }},
		{"negative reload delay", func(c *Config) { c.ReloadDelay = -time.Second }},
		{"negative memory indicator", func(c *Config) { c.MemoryIndicator = -time.Second }},
		{"unknown theme", func(c *Config) { c.ThemeDefault = "sepia" }},
		{"missing theme file", func(c *Config) { c.ThemeFile = "" }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
