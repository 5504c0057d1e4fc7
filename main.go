package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bond-kaneko/calcusmart/config"
	"github.com/bond-kaneko/calcusmart/filenotify"
	"github.com/bond-kaneko/calcusmart/history"
	"github.com/bond-kaneko/calcusmart/history/sqlite"
	"github.com/bond-kaneko/calcusmart/keypad"
	"github.com/bond-kaneko/calcusmart/theme"
	"github.com/mattn/go-isatty"
)

func main() {
	// Environment first, so flags can override it
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Configure command line arguments
	flag.StringVar(&cfg.ThemeFile, "t", cfg.ThemeFile, "Theme file")
	flag.StringVar(&cfg.HistoryDB, "db", cfg.HistoryDB, "SQLite file for persistent history (default: in memory)")
	flag.IntVar(&cfg.HistoryLimit, "n", cfg.HistoryLimit, "Number of recent calculations to keep")
	flag.DurationVar(&cfg.ReloadDelay, "d", cfg.ReloadDelay, "Debounce delay for reloading the theme after changes")
	flag.BoolVar(&cfg.Poll, "poll", cfg.Poll, "Poll the theme file instead of using fs events")
	evalFlag := flag.String("e", "", "Evaluate keys (e.g. \"12+3=\") and print the display")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		cancel()
	}()

	if err := run(ctx, cfg, *evalFlag); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, eval string) error {
	var store history.Store
	if cfg.HistoryDB != "" {
		db, err := sqlite.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer db.Close()
		store = db
	}

	recorder, err := history.NewRecorder(ctx, cfg.HistoryLimit, store)
	if err != nil {
		return err
	}
	themes := &theme.Store{Path: cfg.ThemeFile, Default: cfg.DefaultTheme()}

	if eval != "" {
		return evaluate(ctx, recorder, themes, eval)
	}

	opts := keypad.Options{
		History:         recorder,
		Themes:          themes,
		ReloadDelay:     cfg.ReloadDelay,
		MemoryIndicator: cfg.MemoryIndicator,
	}

	// The watcher needs the theme directory to exist even before the first save
	if err := os.MkdirAll(filepath.Dir(cfg.ThemeFile), 0o755); err != nil {
		log.Printf("Theme changes will not be watched: %v", err)
	} else if watcher, err := filenotify.New(cfg.Poll); err != nil {
		log.Printf("Theme changes will not be watched: %v", err)
	} else {
		defer watcher.Close()
		if err := watcher.Watch(cfg.ThemeFile); err != nil {
			log.Printf("Theme changes will not be watched: %v", err)
		} else {
			opts.Watcher = watcher
		}
	}

	display := keypad.NewDisplay(os.Stdout, cfg.HistoryLimit)
	defer display.Close()
	opts.Display = display
	opts.InputEcho = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	// History store errors are logged while the frame is live
	if w := display.Bypass(); w != nil {
		log.SetOutput(w)
		defer log.SetOutput(os.Stderr)
	}

	session, err := keypad.NewSession(opts)
	if err != nil {
		return err
	}

	fmt.Println("Type keys and press Enter. Enter alone is =, \"history\" shows recent calculations, q quits.")
	if err := session.Run(ctx, os.Stdin); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nShutting down...")
			return nil
		}
		return err
	}
	return nil
}

// evaluate runs keys without a live display and prints the final value.
// Semicolons separate lines, so "5+;=" is the same as typing "5+" then Enter.
func evaluate(ctx context.Context, recorder *history.Recorder, themes *theme.Store, keys string) error {
	session, err := keypad.NewSession(keypad.Options{History: recorder, Themes: themes})
	if err != nil {
		return err
	}
	input := strings.NewReader(strings.ReplaceAll(keys, ";", "\n"))
	if err := session.Run(ctx, input); err != nil {
		return err
	}
	fmt.Println(session.State().Display)
	return nil
}
