package filenotify

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// EventWatcher is an implementation of FileWatcher using fsnotify.
// It watches the parent directory of each file so that saves done by
// rename-over are still seen, and forwards only events for watched files.
type EventWatcher struct {
	watcher *fsnotify.Watcher
	changes chan Change
	errors  chan error
	done    chan struct{}
	once    sync.Once

	// mutex guards files and dirs
	mutex sync.Mutex
	files map[string]bool
	// dirs counts watched files per parent directory
	dirs map[string]int
}

// NewEventWatcher returns a new EventWatcher
func NewEventWatcher() (FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	eventWatcher := &EventWatcher{
		watcher: watcher,
		changes: make(chan Change),
		errors:  make(chan error),
		done:    make(chan struct{}),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
	}

	go eventWatcher.watch()

	return eventWatcher, nil
}

// Changes returns the change channel
func (w *EventWatcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns the error channel
func (w *EventWatcher) Errors() <-chan error {
	return w.errors
}

// Watch adds a file to the watch list. Its parent directory must exist.
func (w *EventWatcher) Watch(path string) error {
	name := cleanPath(path)
	dir := filepath.Dir(name)

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.files[name] {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[name] = true
	return nil
}

// Unwatch removes a file from the watch list
func (w *EventWatcher) Unwatch(path string) error {
	name := cleanPath(path)
	dir := filepath.Dir(name)

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.files[name] {
		return errors.New("file is not being watched")
	}
	delete(w.files, name)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.watcher.Remove(dir)
}

// Close closes the watcher. The change and error channels are closed once
// the forwarding goroutine exits.
func (w *EventWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *EventWatcher) watched(name string) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.files[name]
}

// watch forwards events for watched files to the change channel
func (w *EventWatcher) watch() {
	defer close(w.changes)
	defer close(w.errors)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Clean(event.Name)
			if !w.watched(name) {
				continue
			}
			change := Change{
				Path:    name,
				Removed: event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename),
			}
			select {
			case w.changes <- change:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}
