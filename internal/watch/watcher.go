// Package watch reloads prompts when files in the prompts directory change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches bursts of events, e.g. editors writing a file in several steps
const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc is invoked after a batch of relevant changes
type ReloadFunc func(ctx context.Context)

// Watcher watches one directory for prompt file changes
type Watcher struct {
	dir      string
	ext      string
	reload   ReloadFunc
	debounce time.Duration
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithExtension limits reloads to files with the given extension
func WithExtension(ext string) Option {
	return func(w *Watcher) {
		w.ext = ext
	}
}

// New creates a watcher for dir
func New(dir string, reload ReloadFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		ext:      ".md",
		reload:   reload,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := fw.Close(); err != nil {
			slog.Warn("Error closing watcher", "error", err)
		}
	}()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	slog.Info("Watching prompts directory", "dir", w.dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				slog.Debug("Prompt file changed", "file", event.Name, "op", event.Op.String())
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "dir", w.dir, "error", err)

		case <-timer.C:
			slog.Info("Reloading prompts", "dir", w.dir)
			w.reload(ctx)
		}
	}
}

// relevant filters out chmod-only events, other extensions and files in subdirectories
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Dir(event.Name) != filepath.Clean(w.dir) {
		return false
	}
	return filepath.Ext(event.Name) == w.ext
}
