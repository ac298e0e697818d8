package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay is how long the watcher waits for a burst of writes to end.
const debounceDelay = 100 * time.Millisecond

// Watcher recompiles the project files that change on disk.
type Watcher struct {
	project   *Project
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	logger    *zap.Logger
}

// NewWatcher creates a watcher over every directory of the project. The
// output directory is not watched.
func NewWatcher(project *Project, onChange func([]string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		project:   project,
		watcher:   watcher,
		debouncer: NewDebouncer(debounceDelay, onChange),
		logger:    project.Logger.Named("watch"),
	}
	if err := w.addDirectories(); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addDirectories() error {
	root := w.project.abs(".")
	outDir := w.project.abs(w.project.Config.OutDir)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") || path == outDir) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		w.logger.Debug("watching directory", zap.String("dir", path))
		return nil
	})
}

// Run handles file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.debouncer.Stop()
	defer w.watcher.Close()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.project.selects(event.Name) {
				continue
			}
			w.logger.Debug("file changed", zap.String("file", event.Name))
			w.debouncer.Add(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}

// Debouncer collects file names and hands them over once no new name has
// arrived for the delay.
type Debouncer struct {
	delay    time.Duration
	callback func([]string)

	mu      sync.Mutex
	timer   *time.Timer
	files   map[string]struct{}
	stopped bool
}

// NewDebouncer creates a Debouncer calling callback with the sorted names.
func NewDebouncer(delay time.Duration, callback func([]string)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
		files:    map[string]struct{}{},
	}
}

// Add records a file and restarts the delay.
func (d *Debouncer) Add(file string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.files[file] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.files) == 0 {
		d.mu.Unlock()
		return
	}
	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	d.files = map[string]struct{}{}
	d.mu.Unlock()

	sort.Strings(files)
	d.callback(files)
}

// Stop drops pending files. Add is a no-op afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.files = map[string]struct{}{}
}
