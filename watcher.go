package l10n

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchPacks reloads the active locale whenever its pack file in the pack
// directory is written or replaced. It returns when ctx is done.
func (e *Engine) WatchPacks(ctx context.Context) error {
	return e.watchPacks(ctx, nil)
}

func (e *Engine) watchPacks(ctx context.Context, ready func()) error {
	dir := e.cfg.PackDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrIO, dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("l10n: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("l10n: watch %s: %w", dir, err)
	}
	logger := e.logger.With().Str("component", "watcher").Str("dir", dir).Logger()
	logger.Debug().Msg("watching packs")
	if ready != nil {
		ready()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			reloaded, err := e.reloadIfActive(ev.Name)
			if err != nil {
				logger.Warn().Err(err).Str("path", ev.Name).Msg("reload pack")
				continue
			}
			if reloaded {
				logger.Info().Str("path", ev.Name).Msg("pack reloaded")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// reloadIfActive re-applies the active locale when path is its pack file.
func (e *Engine) reloadIfActive(path string) (bool, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	active := e.load().state.Locale
	if active.FilePath == "" || !samePath(active.FilePath, path) {
		return false, nil
	}
	if err := e.applyLocked(applyRequest{desc: active}); err != nil {
		return false, err
	}
	return true, nil
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
