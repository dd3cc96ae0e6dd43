package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 100 * time.Millisecond

// errNothingToWatch is returned when every input is stdin.
var errNothingToWatch = errors.New("--watch needs at least one file argument")

// watchInputs calls fn once the watcher is registered, and again after every
// write to one of paths, until ctx is done. fn always runs on the calling
// goroutine. Parent directories are watched so files replaced by rename are
// still seen.
func watchInputs(ctx context.Context, paths []string, logger *slog.Logger, fn func()) error {
	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == stdinPath {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
	}
	if len(watched) == 0 {
		return errNothingToWatch
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := make(map[string]bool)
	for path := range watched {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	logger.Debug("watching inputs", "files", len(watched), "dirs", len(dirs))

	fn()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, watched) {
				continue
			}
			logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
			pending = time.After(watchDebounce)
		case <-pending:
			pending = nil
			fn()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// relevantEvent reports whether event writes or recreates a watched file.
func relevantEvent(event fsnotify.Event, watched map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return watched[filepath.Clean(event.Name)]
}
