package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay collapses the burst of events editors produce on save into
// a single reload.
const DebounceDelay = 250 * time.Millisecond

// Watch reloads path whenever it changes and passes the result to fn. A
// reload that fails to parse or validate is reported through fn with a
// non-nil error; the caller decides whether to keep its previous config.
//
// The parent directory is watched rather than the file itself so that
// atomic saves (write temp file, rename over) keep triggering. Watch blocks
// until ctx is cancelled and then returns nil.
func Watch(ctx context.Context, path string, fn func(Config, error)) error {
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	timer := time.NewTimer(DebounceDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(DebounceDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(Config{}, fmt.Errorf("watch %s: %w", path, err))
		case <-timer.C:
			fn(Load(path))
		}
	}
}
