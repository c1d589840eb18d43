package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/logger"
)

// DefaultSettle is how long a new file is left alone before it is handled.
const DefaultSettle = 500 * time.Millisecond

// New creates a Watcher over the given directories. Handler calls are serialized.
func New(dirs []string, handler EventHandler, log logger.Logger, settle time.Duration) (Watcher, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no directories to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("add watch path %s: %w", dir, err)
		}
	}

	if settle < 0 {
		settle = DefaultSettle
	}

	return &implWatcher{
		dirs:    dirs,
		handler: handler,
		logger:  log,
		watcher: watcher,
		settle:  settle,
		seen:    make(map[string]bool),
	}, nil
}
