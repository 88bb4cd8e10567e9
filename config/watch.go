// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/katalvlaran/bandit/coin"
)

// DefaultDebounce is how long a Watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a definitions file whenever it changes on disk.
//
// The parent directory is watched rather than the file so that editors
// replacing the file by rename are still observed.
type Watcher struct {
	Path     string
	Debounce time.Duration // zero means DefaultDebounce
	Logger   *slog.Logger  // nil discards
}

// Watch is shorthand for a Watcher with default settings.
func Watch(ctx context.Context, path string, onChange func([]coin.Definition, error)) error {
	w := &Watcher{Path: path}

	return w.Run(ctx, onChange)
}

// Run loads the file once, reports it, then reports every reload until ctx
// is done. onChange is called from the Run goroutine only. Run returns nil
// when ctx is cancelled and an error only if watching cannot start.
func (w *Watcher) Run(ctx context.Context, onChange func([]coin.Definition, error)) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: watch: %w", ErrLoad, err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("%w: watch %s: %w", ErrLoad, filepath.Dir(target), err)
	}

	onChange(Load(target))
	logger.Info("watching definitions", slog.String("path", target))

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
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("definitions changed", slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			defs, err := Load(target)
			if err != nil {
				logger.Warn("reload failed", slog.String("path", target), slog.Any("error", err))
			} else {
				logger.Info("definitions reloaded", slog.String("path", target), slog.Int("tests", len(defs)))
			}
			onChange(defs, err)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("error", err))
		}
	}
}
