// Package keypad is the terminal front end of the calculator. It reads key
// presses line by line, drives the calculator engine, records committed
// calculations in history and draws the result after every line.
//
// A Session owns all calculator, history and theme state from a single
// goroutine; input lines, theme file changes and timers all arrive through
// one select loop.
package keypad

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/bond-kaneko/calcusmart/calculator"
	"github.com/bond-kaneko/calcusmart/filenotify"
	"github.com/bond-kaneko/calcusmart/history"
	"github.com/bond-kaneko/calcusmart/theme"
)

// Options configure a Session
type Options struct {
	// History receives committed calculations. Required.
	History *history.Recorder
	// Themes persists the theme flag. Required.
	Themes *theme.Store
	// Watcher reports external edits to the theme file. Optional.
	Watcher filenotify.FileWatcher
	// Display draws frames. Nil discards output.
	Display *Display
	// ReloadDelay debounces theme file changes
	ReloadDelay time.Duration
	// MemoryIndicator is how long memory stays visible after it changes
	MemoryIndicator time.Duration
	// InputEcho is set when the terminal echoes each input line below the frame
	InputEcho bool
}

// Session connects keyboard input, the calculator engine and the display
type Session struct {
	engine          *calculator.Engine
	history         *history.Recorder
	themes          *theme.Store
	mode            theme.Mode
	watcher         filenotify.FileWatcher
	display         *Display
	reloadDelay     time.Duration
	memoryIndicator time.Duration
	inputEcho       bool

	showMemory  bool
	showHistory bool
	message     string
}

// NewSession creates a session and loads the saved theme
func NewSession(opts Options) (*Session, error) {
	if opts.History == nil {
		return nil, fmt.Errorf("history recorder is required")
	}
	if opts.Themes == nil {
		return nil, fmt.Errorf("theme store is required")
	}
	display := opts.Display
	if display == nil {
		display = NewDisplay(io.Discard, 0)
	}

	s := &Session{
		engine:          calculator.New(opts.History.Record),
		history:         opts.History,
		themes:          opts.Themes,
		watcher:         opts.Watcher,
		display:         display,
		reloadDelay:     opts.ReloadDelay,
		memoryIndicator: opts.MemoryIndicator,
		inputEcho:       opts.InputEcho,
	}

	mode, err := opts.Themes.Load()
	if err != nil {
		s.message = fmt.Sprintf("Error loading theme: %v", err)
	}
	s.mode = mode

	return s, nil
}

// State returns the engine's observable state
func (s *Session) State() calculator.State {
	return s.engine.State()
}

// Theme returns the active theme
func (s *Session) Theme() theme.Mode {
	return s.mode
}

// Run processes input until it is exhausted, a quit key is read or ctx is done
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	var changes <-chan filenotify.Change
	var watchErrors <-chan error
	if s.watcher != nil {
		changes = s.watcher.Changes()
		watchErrors = s.watcher.Errors()
	}

	var reloadTimer, memoryTimer *time.Timer
	var reload, memoryExpired <-chan time.Time
	defer func() {
		if reloadTimer != nil {
			reloadTimer.Stop()
		}
		if memoryTimer != nil {
			memoryTimer.Stop()
		}
	}()

	s.render()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}

			if s.inputEcho {
				s.display.InputEchoed()
			}
			before := s.engine.Memory()
			quit := s.HandleLine(line)
			if after := s.engine.Memory(); memoryChanged(before, after) {
				s.showMemory = after != 0
				if memoryTimer != nil {
					memoryTimer.Stop()
				}
				memoryTimer = time.NewTimer(s.memoryIndicator)
				memoryExpired = memoryTimer.C
			}
			s.render()
			if quit {
				return nil
			}

		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			// Debounce to reload only once for a burst of writes
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.NewTimer(s.reloadDelay)
			reload = reloadTimer.C

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			s.message = fmt.Sprintf("Watch error: %v", err)
			s.render()

		case <-reload:
			reload = nil
			s.reloadTheme()
			s.render()

		case <-memoryExpired:
			memoryExpired = nil
			s.showMemory = false
			s.render()

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// HandleLine applies one line of key presses and reports whether a quit key was read.
// Keys after a quit key are ignored.
func (s *Session) HandleLine(line string) bool {
	s.message = ""

	keys, unknown := ParseLine(line)
	if len(unknown) > 0 {
		s.message = fmt.Sprintf("Unknown keys: %q", string(unknown))
	}

	for _, k := range keys {
		if Apply(s.engine, k) {
			continue
		}
		switch k.Action {
		case ShowHistory:
			s.showHistory = !s.showHistory
		case ClearHistory:
			s.history.Clear()
		case ToggleTheme:
			s.toggleTheme()
		case Quit:
			return true
		}
	}
	return false
}

func (s *Session) toggleTheme() {
	mode := s.mode.Toggle()
	if err := s.themes.Save(mode); err != nil {
		s.message = fmt.Sprintf("Theme could not be saved: %v", err)
	}
	s.mode = mode
}

func (s *Session) reloadTheme() {
	mode, err := s.themes.Load()
	if err != nil {
		s.message = fmt.Sprintf("Error reloading theme: %v", err)
		return
	}
	s.mode = mode
}

// memoryChanged compares bit patterns, so a NaN register equals itself
func memoryChanged(before, after float64) bool {
	return math.Float64bits(before) != math.Float64bits(after)
}

func (s *Session) render() {
	s.display.Show(Frame{
		Theme:       s.mode,
		State:       s.engine.State(),
		ShowMemory:  s.showMemory,
		ShowHistory: s.showHistory,
		History:     s.history.Entries(),
		Message:     s.message,
	})
}
