// Package watcher signals when a project file or preset directory changes,
// with debouncing, so the effective registry can be recomputed.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors project files and preset directories.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]bool // watched files, by absolute path
	dirs      map[string]bool // watched preset directories
	debounce  time.Duration
	onChange  chan struct{}
	errs      chan error
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Files       []string // individual files, e.g. the project file
	Dirs        []string // directories whose preset files are watched
	DebounceDur time.Duration
}

// DefaultConfig returns defaults for watching the given files and directories.
func DefaultConfig(files, dirs []string) Config {
	return Config{
		Files:       files,
		Dirs:        dirs,
		DebounceDur: 300 * time.Millisecond,
	}
}

// New creates a new watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		files:     make(map[string]bool),
		dirs:      make(map[string]bool),
		debounce:  cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
	}
	for _, f := range cfg.Files {
		if abs, err := filepath.Abs(f); err == nil {
			w.files[abs] = true
		}
	}
	for _, d := range cfg.Dirs {
		if abs, err := filepath.Abs(d); err == nil {
			w.dirs[abs] = true
		}
	}
	return w, nil
}

// Start begins watching. It returns a channel that receives a signal after
// a burst of relevant changes has settled. Preset directories that do not
// exist are skipped.
func (w *Watcher) Start() (<-chan struct{}, error) {
	watched := make(map[string]bool)
	for f := range w.files {
		// Watch the directory so that editors which replace the file are seen.
		watched[filepath.Dir(f)] = true
	}
	for d := range w.dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			watched[d] = true
		}
	}

	for dir := range watched {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	go w.loop()

	return w.onChange, nil
}

// Errors returns errors reported by the underlying file watcher. Errors are
// dropped when nobody is reading.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			// Non-blocking send: one pending signal is enough.
			select {
			case w.onChange <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a recompute.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if w.files[name] {
		return true
	}
	if !w.dirs[filepath.Dir(name)] {
		return false
	}
	return strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".yaml")
}
