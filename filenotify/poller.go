package filenotify

import (
	"errors"
	"os"
	"sync"
	"time"
)

// PollingWatcher is an implementation of FileWatcher based on polling
type PollingWatcher struct {
	// interval is the time between polling for file changes
	interval time.Duration
	// files is the list of files being watched
	files map[string]fileInfo
	// changes is the channel where changes are reported
	changes chan Change
	// errors is the channel where errors are reported
	errors chan error
	// stop is used to stop the polling
	stop chan struct{}
	// mutex guards access to files map
	mutex sync.Mutex
	// done is closed when polling has stopped
	done chan struct{}
	once sync.Once
}

type fileInfo struct {
	Exists  bool
	ModTime time.Time
	Size    int64
}

// NewPollingWatcher returns a new polling watcher with the default interval of 200ms
func NewPollingWatcher() FileWatcher {
	return NewPollingWatcherWithInterval(200 * time.Millisecond)
}

// NewPollingWatcherWithInterval returns a new polling watcher with the specified interval
func NewPollingWatcherWithInterval(interval time.Duration) FileWatcher {
	watcher := &PollingWatcher{
		interval: interval,
		files:    make(map[string]fileInfo),
		changes:  make(chan Change),
		errors:   make(chan error),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go watcher.poll()
	return watcher
}

// Watch adds a file to the watch list
func (w *PollingWatcher) Watch(path string) error {
	name := cleanPath(path)
	info, err := stat(name)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.files[name] = info
	return nil
}

// Unwatch removes a file from the watch list
func (w *PollingWatcher) Unwatch(path string) error {
	name := cleanPath(path)

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, exists := w.files[name]; !exists {
		return errors.New("file is not being watched")
	}

	delete(w.files, name)
	return nil
}

// Changes returns the change channel
func (w *PollingWatcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns the error channel
func (w *PollingWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the polling watcher
func (w *PollingWatcher) Close() error {
	w.once.Do(func() {
		close(w.stop)
		<-w.done
		close(w.changes)
		close(w.errors)
	})
	return nil
}

// poll checks for changes to the watched files at the specified interval
func (w *PollingWatcher) poll() {
	defer close(w.done)

	// Use a ticker to poll at the specified interval
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			changes, errs := w.checkFiles()
			for _, c := range changes {
				select {
				case w.changes <- c:
				case <-w.stop:
					return
				}
			}
			for _, err := range errs {
				select {
				case w.errors <- err:
				case <-w.stop:
					return
				}
			}
		case <-w.stop:
			return
		}
	}
}

// checkFiles compares every watched file against its last known state.
// Results are returned rather than sent so the mutex is never held while blocked on a reader.
func (w *PollingWatcher) checkFiles() ([]Change, []error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	var changes []Change
	var errs []error
	for name, oldInfo := range w.files {
		currentInfo, err := stat(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		switch {
		case oldInfo.Exists && !currentInfo.Exists:
			changes = append(changes, Change{Path: name, Removed: true})
		case !currentInfo.Exists:
			continue
		case !oldInfo.Exists,
			currentInfo.ModTime != oldInfo.ModTime,
			currentInfo.Size != oldInfo.Size:
			changes = append(changes, Change{Path: name})
		default:
			continue
		}
		w.files[name] = currentInfo
	}
	return changes, errs
}

// stat reports a missing file as not existing rather than as an error
func stat(name string) (fileInfo, error) {
	f, err := os.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			return fileInfo{}, nil
		}
		return fileInfo{}, err
	}
	return fileInfo{
		Exists:  true,
		ModTime: f.ModTime(),
		Size:    f.Size(),
	}, nil
}
