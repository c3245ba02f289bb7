package preview

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

// Watch calls onChange after any of files is written, created or renamed,
// until ctx is done. Parent directories are watched so editors that replace
// files atomically keep triggering.
func Watch(ctx context.Context, files []string, debounce time.Duration, logger *slog.Logger, onChange func()) error {
	if len(files) == 0 {
		return fmt.Errorf("preview: no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preview: create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("preview: resolve %s: %w", file, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("preview: watch %s: %w", dir, err)
		}
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, targets) {
				continue
			}
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
			if logger != nil {
				logger.Warn("file watcher error", slog.Any("error", err))
			}
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

func relevant(event fsnotify.Event, targets map[string]struct{}) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := targets[abs]
	return ok
}
