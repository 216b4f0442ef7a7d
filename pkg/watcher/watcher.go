// Package watcher reloads a mesh model whenever one of its source files changes.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/meshio"
)

// ErrNoFiles is returned by Reload when nothing is being watched
var ErrNoFiles = errors.New("watcher: no files to reload")

// Reloader watches mesh files and replaces the model's contents with a
// fresh load after they change. A failed reload is logged and leaves the
// model as it was.
type Reloader struct {
	model    *mesh.Model
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logf     func(format string, args ...any)

	// held for the whole of Reload; reloads run one at a time
	reloading sync.Mutex

	mu       sync.Mutex
	files    []string
	timer    *time.Timer
	onReload func(error)
}

// New creates a reloader for model. logf receives progress messages; nil
// means fmt.Printf.
func New(model *mesh.Model, debounce time.Duration, logf func(format string, args ...any)) (*Reloader, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logf == nil {
		logf = func(format string, args ...any) { fmt.Printf(format, args...) }
	}

	return &Reloader{
		model:    model,
		watcher:  w,
		debounce: debounce,
		logf:     logf,
	}, nil
}

// OnReload registers a callback invoked after every reload attempt with its
// result (nil on success).
func (r *Reloader) OnReload(fn func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReload = fn
}

// Watch adds files to the watched set. All watched files are reloaded
// together, in the order they were added.
func (r *Reloader) Watch(files ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if slices.Contains(r.files, absPath) {
			continue
		}
		// Editors often replace files on save, so watch the directory
		if err := r.watcher.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}
		r.files = append(r.files, absPath)
	}
	return nil
}

// Files returns the absolute paths being watched
func (r *Reloader) Files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.files)
}

// Run processes file events until ctx is done, then closes the watcher
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()
	defer r.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if r.isWatched(event.Name) {
				r.schedule(ctx, event.Name)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logf("Watcher error: %v\n", err)
		}
	}
}

func (r *Reloader) isWatched(name string) bool {
	absPath, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.files, absPath)
}

// schedule debounces bursts of events into a single reload
func (r *Reloader) schedule(ctx context.Context, changed string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		r.logf("File changed: %s\n", changed)
		r.Reload(ctx)
	})
}

func (r *Reloader) stopTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
}

// Reload loads all watched files now and swaps them into the model.
// Without watched files it returns ErrNoFiles and leaves the model alone.
func (r *Reloader) Reload(ctx context.Context) error {
	r.reloading.Lock()
	defer r.reloading.Unlock()

	files := r.Files()
	start := time.Now()

	var err error
	if len(files) == 0 {
		err = ErrNoFiles
	} else {
		err = meshio.LoadInto(ctx, r.model, true, files...)
	}
	if err != nil {
		r.logf("Error reloading model: %v\n", err)
	} else {
		r.logf("Model reloaded in %.2fs\n", time.Since(start).Seconds())
	}

	r.mu.Lock()
	callback := r.onReload
	r.mu.Unlock()
	if callback != nil {
		callback(err)
	}
	return err
}
