// Package theme persists the light/dark display preference.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode is a display theme
type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other theme
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Parse reads "light" or "dark", ignoring case and surrounding whitespace
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("unknown theme %q", s)
	}
}

// Store keeps the theme flag in a single file
type Store struct {
	Path    string
	Default Mode
}

// DefaultPath returns the theme file under the user's home directory
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".calcusmart", "theme"), nil
}

// Load returns the saved theme, or the default if nothing has been saved yet
func (s *Store) Load() (Mode, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.Default, nil
		}
		return s.Default, fmt.Errorf("failed to read theme: %w", err)
	}

	mode, err := Parse(string(data))
	if err != nil {
		return s.Default, fmt.Errorf("invalid theme file %s: %w", s.Path, err)
	}
	return mode, nil
}

// Save writes mode to the theme file, creating its directory if needed
func (s *Store) Save(mode Mode) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create theme directory: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(mode.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
