package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/discovery"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/logger"
)

type implWatcher struct {
	dirs    []string
	handler EventHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	settle  time.Duration
	seen    map[string]bool
}

// Start monitors the directories and hands each new audio file to the handler,
// one at a time, until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching for new recordings in: %s", strings.Join(w.dirs, ", "))
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(discovery.SupportedFormats(), ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.accept(event.Name) {
				w.logger.Debug(ctx, "Ignoring: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)

			// Give the writer a moment to finish copying the file in.
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return ctx.Err()
			}

			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", event.Name, err)
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// accept reports whether path is an audio file not handled before in this session.
func (w *implWatcher) accept(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") || !discovery.IsAudioFile(path) {
		return false
	}
	key := filepath.Clean(path)
	if w.seen[key] {
		return false
	}
	w.seen[key] = true
	return true
}
