// Package watch reruns the koans whenever the student saves a lesson.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// RunFunc is one meditation over the koans. It is called once when watching starts and
// again after every settled burst of changes.
type RunFunc func(ctx context.Context) error

// Watcher watches lesson directories for changes to Go files
type Watcher struct {
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a Watcher that waits debounce after the last change before rerunning
func New(debounce time.Duration, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{debounce: debounce, logger: logger}
}

// Watch calls run, then calls it again whenever a .go file in dirs is written, created
// or renamed. Directories created under dirs are watched too. Watch returns nil when ctx
// is cancelled and the error of run if it fails.
func (w *Watcher) Watch(ctx context.Context, dirs []string, run RunFunc) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.logger.Debug("Watching lessons", zap.Int("dirs", len(dirs)), zap.Duration("debounce", w.debounce))

	if err := run(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Watch stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.watchNewDir(fsw, event) || !relevant(event) {
				continue
			}
			w.logger.Debug("Lesson changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-timer.C:
			if err := run(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// watchNewDir adds directories created under a watched one. It reports whether event
// was such a directory.
func (w *Watcher) watchNewDir(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return true
	}
	if err := fsw.Add(event.Name); err != nil {
		w.logger.Warn("Failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
	}
	return true
}

// relevant reports whether event changes Go source
func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".go") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
