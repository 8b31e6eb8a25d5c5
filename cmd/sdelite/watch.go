package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hlop3z/sdelite/internal/sderr"
)

// watchDebounce is how long the input must stay quiet before a re-run.
const watchDebounce = 500 * time.Millisecond

// watchDir runs fn once, then again each time a .jsonl file in dir changes
// and dir stays quiet for debounce. It returns when ctx is done or fn
// returns an error.
func watchDir(ctx context.Context, dir string, debounce time.Duration, logger *slog.Logger, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return sderr.Wrap(sderr.ErrInternal, err, "failed to start file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return sderr.Wrap(sderr.ErrReadSource, err, "failed to watch input directory").WithFile(dir, 0)
	}
	logger.Info("watching for changes", "dir", dir)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSourceChange(ev) {
				continue
			}
			logger.Debug("input changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)

		case <-fire:
			fire = nil
			logger.Info("input settled, converting again", "dir", dir)
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}

func isSourceChange(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, ".jsonl") {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
