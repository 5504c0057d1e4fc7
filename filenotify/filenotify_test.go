package filenotify

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const waitTimeout = 5 * time.Second

func nextChange(t *testing.T, w FileWatcher) Change {
	t.Helper()

	select {
	case c, ok := <-w.Changes():
		if !ok {
			t.Fatal("changes channel closed")
		}
		return c
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestPollingWatcherDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")
	writeFile(t, path, "light\n")

	w := NewPollingWatcherWithInterval(10 * time.Millisecond)
	defer w.Close()
	if err := w.Watch(path); err != nil {
		t.Fatalf("watch: %v", err)
	}

	writeFile(t, path, "dark\n\n")

	c := nextChange(t, w)
	if c.Removed {
		t.Errorf("Write should not be reported as removal: %+v", c)
	}
	if c.Path != cleanPath(path) {
		t.Errorf("Change path should be %q, got %q", cleanPath(path), c.Path)
	}
}

func TestPollingWatcherMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")

	w := NewPollingWatcherWithInterval(10 * time.Millisecond)
	defer w.Close()
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watching a missing file should succeed: %v", err)
	}

	writeFile(t, path, "dark\n")
	if c := nextChange(t, w); c.Removed {
		t.Errorf("Created file should be reported as a change: %+v", c)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if c := nextChange(t, w); !c.Removed {
		t.Errorf("Deleted file should be reported as removed: %+v", c)
	}
}

func TestPollingWatcherUnwatch(t *testing.T) {
	w := NewPollingWatcherWithInterval(time.Hour)
	defer w.Close()

	if err := w.Unwatch("missing"); err == nil {
		t.Error("Unwatch of an unknown file should fail")
	}
	if err := w.Watch("theme"); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := w.Unwatch("theme"); err != nil {
		t.Errorf("unwatch: %v", err)
	}
}

func TestPollingWatcherClose(t *testing.T) {
	w := NewPollingWatcherWithInterval(10 * time.Millisecond)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Changes(); ok {
		t.Error("Changes channel should be closed")
	}
}

func TestEventWatcherFiltersToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme")
	writeFile(t, path, "light\n")

	w, err := NewEventWatcher()
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()
	if err := w.Watch(path); err != nil {
		t.Fatalf("watch: %v", err)
	}

	writeFile(t, filepath.Join(dir, "other"), "ignored")
	writeFile(t, path, "dark\n")

	c := nextChange(t, w)
	if c.Path != cleanPath(path) {
		t.Errorf("First change should be for the watched file, got %q", c.Path)
	}
}

func TestEventWatcherClose(t *testing.T) {
	w, err := NewEventWatcher()
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case _, ok := <-w.Changes():
		if ok {
			t.Error("Changes channel should be closed")
		}
	case <-time.After(waitTimeout):
		t.Error("Changes channel was not closed after Close")
	}
}

func TestNewForcePoll(t *testing.T) {
	w, err := New(true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()

	if _, ok := w.(*PollingWatcher); !ok {
		t.Errorf("New(true) should return a polling watcher, got %T", w)
	}
}
