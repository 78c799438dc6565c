// Package watcher re-runs work when documents change, with debouncing so a
// burst of editor writes triggers one pass instead of dozens.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/RichMorin/dtags/internal/logging"
)

// FileFilter decides whether a changed path is interesting.
type FileFilter func(path string) bool

// ChangeHandler runs once per debounced batch of changed paths.
type ChangeHandler func(paths []string) error

// FileWatcher watches document roots for changes.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	log       logging.Logger
	debouncer *debouncer
	filters   []FileFilter
	handlers  []ChangeHandler
	mutex     sync.RWMutex
}

// debouncer groups rapid file changes together.
type debouncer struct {
	delay   time.Duration
	output  chan []string
	timer   *time.Timer
	pending map[string]struct{}
	mutex   sync.Mutex
}

// New creates a file watcher that waits delay after the last event before
// invoking handlers.
func New(delay time.Duration, log logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		watcher: w,
		log:     log,
		debouncer: &debouncer{
			delay:   delay,
			output:  make(chan []string, 8),
			pending: make(map[string]struct{}),
		},
	}, nil
}

// AddFilter adds a file filter; a path must pass every filter.
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler.
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddRecursive watches root and every directory below it.
func (fw *FileWatcher) AddRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
			return filepath.SkipDir
		}
		return fw.watcher.Add(path)
	})
}

// Start begins watching; it returns immediately and runs until ctx is done.
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.watchLoop(ctx)
	go fw.dispatchLoop(ctx)
}

// Stop closes the underlying watcher.
func (fw *FileWatcher) Stop() error {
	fw.debouncer.mutex.Lock()
	if fw.debouncer.timer != nil {
		fw.debouncer.timer.Stop()
	}
	fw.debouncer.mutex.Unlock()
	return fw.watcher.Close()
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !fw.accept(event.Name) {
				continue
			}
			fw.debouncer.add(event.Name)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn(ctx, err, "file watcher error")
		}
	}
}

func (fw *FileWatcher) accept(path string) bool {
	fw.mutex.RLock()
	defer fw.mutex.RUnlock()
	for _, filter := range fw.filters {
		if !filter(path) {
			return false
		}
	}
	return true
}

func (fw *FileWatcher) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case paths := <-fw.debouncer.output:
			fw.mutex.RLock()
			handlers := fw.handlers
			fw.mutex.RUnlock()
			for _, handler := range handlers {
				if err := handler(paths); err != nil {
					fw.log.Warn(ctx, err, "change handler failed")
				}
			}
		}
	}
}

func (d *debouncer) add(path string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 {
		return
	}
	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}
	for path := range d.pending {
		delete(d.pending, path)
	}

	select {
	case d.output <- paths:
	default:
		// Channel full, drop this batch; the next event reschedules.
	}
}

// ExtFilter keeps only paths with one of the given extensions.
func ExtFilter(exts []string) FileFilter {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[ext] = struct{}{}
	}
	return func(path string) bool {
		_, ok := set[filepath.Ext(path)]
		return ok
	}
}
