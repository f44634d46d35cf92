// Package watcher notices growth in the Claude Code log tree so the
// monitor can refresh between scheduled ticks instead of waiting out the
// interval.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher fires onChange whenever a .jsonl file under dir is created or
// grows. The callback must be cheap; the monitor's single-flight guard
// absorbs bursts.
type Watcher struct {
	dir          string
	pollInterval time.Duration
	onChange     func()

	mu    sync.Mutex
	sizes map[string]int64

	stop chan struct{}
	wg   sync.WaitGroup
}

func New(dir string, pollInterval time.Duration, onChange func()) *Watcher {
	return &Watcher{
		dir:          dir,
		pollInterval: pollInterval,
		onChange:     onChange,
		sizes:        make(map[string]int64),
		stop:         make(chan struct{}),
	}
}

// Start begins watching with fsnotify plus a polling safety net. The
// polling pass also picks up directories created after startup, which
// fsnotify alone would miss.
func (w *Watcher) Start() {
	w.snapshotSizes()

	if fsw, err := fsnotify.NewWatcher(); err == nil {
		_ = filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
			if err == nil && info.IsDir() {
				_ = fsw.Add(path)
			}
			return nil
		})

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case event, ok := <-fsw.Events:
					if !ok {
						return
					}
					if filepath.Ext(event.Name) == ".jsonl" &&
						event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						if w.markChanged(event.Name) {
							w.onChange()
						}
					}
				case <-w.stop:
					fsw.Close()
					return
				}
			}
		}()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if w.pollAll() {
					w.onChange()
				}
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop signals goroutines to exit and waits for them to finish.
func (w *Watcher) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *Watcher) snapshotSizes() {
	sizes := w.collectSizes()
	w.mu.Lock()
	w.sizes = sizes
	w.mu.Unlock()
}

func (w *Watcher) collectSizes() map[string]int64 {
	sizes := make(map[string]int64)
	_ = filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}
		sizes[path] = info.Size()
		return nil
	})
	return sizes
}

// markChanged records the file's current size and reports whether it is
// new or has grown since last seen.
func (w *Watcher) markChanged(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	last, known := w.sizes[path]
	w.sizes[path] = info.Size()
	return !known || info.Size() > last
}

func (w *Watcher) pollAll() bool {
	current := w.collectSizes()

	w.mu.Lock()
	defer w.mu.Unlock()
	changed := false
	for path, size := range current {
		if last, known := w.sizes[path]; !known || size > last {
			changed = true
		}
	}
	w.sizes = current
	return changed
}
