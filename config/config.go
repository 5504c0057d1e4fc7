// Package config loads calculator settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/bond-kaneko/calcusmart/history"
	"github.com/bond-kaneko/calcusmart/theme"
	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the calculator front end.
// Command-line flags override values loaded from the environment.
type Config struct {
	// ThemeFile is where the theme flag is persisted. Empty means ~/.calcusmart/theme.
	ThemeFile string `env:"CALC_THEME_FILE"`
	// ThemeDefault is used until a theme has been saved
	ThemeDefault string `env:"CALC_THEME_DEFAULT" envDefault:"light"`
	// HistoryDB is a SQLite file for persistent history. Empty keeps history in memory.
	HistoryDB string `env:"CALC_HISTORY_DB"`
	// HistoryLimit is the number of recent calculations kept
	HistoryLimit int `env:"CALC_HISTORY_LIMIT" envDefault:"10"`
	// ReloadDelay debounces theme file changes
	ReloadDelay time.Duration `env:"CALC_RELOAD_DELAY" envDefault:"500ms"`
	// MemoryIndicator is how long the memory indicator stays visible after memory changes
	MemoryIndicator time.Duration `env:"CALC_MEMORY_INDICATOR" envDefault:"2s"`
	// Poll forces the polling file watcher instead of fsnotify
	Poll bool `env:"CALC_POLL" envDefault:"false"`
}

// Load parses the configuration from environment variables and fills in the theme path.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ThemeFile == "" {
		path, err := theme.DefaultPath()
		if err != nil {
			return Config{}, err
		}
		cfg.ThemeFile = path
	}
	return cfg, nil
}

// Validate rejects settings the calculator cannot run with
func (c Config) Validate() error {
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}
	if c.ReloadDelay < 0 {
		return fmt.Errorf("reload delay must not be negative, got %s", c.ReloadDelay)
	}
	if c.MemoryIndicator < 0 {
		return fmt.Errorf("memory indicator duration must not be negative, got %s", c.MemoryIndicator)
	}
	if _, err := theme.Parse(c.ThemeDefault); err != nil {
		return fmt.Errorf("default theme: %w", err)
	}
	if c.ThemeFile == "" {
		return fmt.Errorf("theme file is required")
	}
	return nil
}

// DefaultTheme returns the parsed default theme, falling back to light
func (c Config) DefaultTheme() theme.Mode {
	mode, err := theme.Parse(c.ThemeDefault)
	if err != nil {
		return theme.Light
	}
	return mode
}

// Default returns the configuration used when no environment variables are set
func Default() Config {
	return Config{
		ThemeDefault:    theme.Light.String(),
		HistoryLimit:    history.DefaultLimit,
		ReloadDelay:     500 * time.Millisecond,
		MemoryIndicator: 2 * time.Second,
	}
}
