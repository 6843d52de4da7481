// Package watcher reruns a build when any of its input files change
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a set of files and reports changes after they settle.
// Parent directories are watched rather than the files themselves so that
// editors which save by renaming a temp file are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	log      *slog.Logger
	debounce time.Duration

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]int
}

// NewFileWatcher creates a watcher that waits debounce after the last
// change before reporting it.
func NewFileWatcher(debounce time.Duration, log *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &FileWatcher{
		watcher:  w,
		log:      log,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
	}, nil
}

// Watch adds files to the watched set
func (fw *FileWatcher) Watch(files []string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if fw.files[absPath] {
			continue
		}
		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fw.dirs[dir]++
		fw.files[absPath] = true
		fw.log.Debug("watching", "file", absPath)
	}
	return nil
}

// Files returns the watched files
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	out := make([]string, 0, len(fw.files))
	for f := range fw.files {
		out = append(out, f)
	}
	return out
}

// RemoveAll stops watching every file
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return fmt.Errorf("failed to unwatch %s: %w", dir, err)
		}
	}
	fw.files = make(map[string]bool)
	fw.dirs = make(map[string]int)
	return nil
}

// Run delivers settled changes to onChange until ctx is done. Changes to
// several files inside one debounce window are reported once, with the
// last file that changed. onChange runs on the Run goroutine, so a slow
// callback delays the next report instead of overlapping it.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(ctx context.Context, path string)) error {
	timer := time.NewTimer(fw.debounce)
	timer.Stop()
	var pending string

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.relevant(event) {
				continue
			}
			fw.log.Debug("file changed", "file", event.Name, "op", event.Op.String())
			pending = event.Name
			timer.Reset(fw.debounce)

		case <-timer.C:
			fw.log.Info("change detected", "file", pending)
			onChange(ctx, pending)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Warn("watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.files[filepath.Clean(event.Name)]
}

// Close stops the watcher; Run returns afterwards
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
