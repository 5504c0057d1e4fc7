// Package filenotify reports changes to individual files.
// It wraps fsnotify, and provides a poll-based notifier for filesystems where
// fsnotify does not work. Both satisfy FileWatcher so either can be used.
package filenotify

import "path/filepath"

// Change describes an update to a watched file
type Change struct {
	// Path is the absolute form of the path passed to Watch
	Path string
	// Removed is true when the file was deleted or renamed away
	Removed bool
}

// FileWatcher is an interface for watching individual files
type FileWatcher interface {
	// Changes returns the channel of file changes
	Changes() <-chan Change
	// Errors returns the channel of watch errors
	Errors() <-chan error
	// Watch starts watching the named file. The file does not need to exist yet.
	Watch(path string) error
	// Unwatch stops watching the named file
	Unwatch(path string) error
	// Close stops watching and closes the channels
	Close() error
}

// New tries to use an fs-event watcher, and falls back to the poller if there is an error
// or if forcePoll is set
func New(forcePoll bool) (FileWatcher, error) {
	if forcePoll {
		return NewPollingWatcher(), nil
	}
	watcher, err := NewEventWatcher()
	if err != nil {
		return NewPollingWatcher(), nil
	}
	return watcher, nil
}

func cleanPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
