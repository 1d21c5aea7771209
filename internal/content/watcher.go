package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Store whenever one of its asset files changes on disk.
type Watcher struct {
	store       *Store
	watcher     *fsnotify.Watcher
	logger      *zap.Logger
	debounceDur time.Duration
	doneCh      chan struct{}
}

// NewWatcher starts watching the store's directory. Call Run to process events.
func NewWatcher(store *Store, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(store.Dir()); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", store.Dir(), err)
	}
	return &Watcher{
		store:       store,
		watcher:     fw,
		logger:      logger,
		debounceDur: 200 * time.Millisecond,
		doneCh:      make(chan struct{}),
	}, nil
}

// Run processes file events until ctx is done, then closes the underlying watcher.
// Bursts of events are collapsed into one reload.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.doneCh)
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounceDur)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isAssetFile(event.Name) {
				continue
			}
			w.logger.Debug("Asset changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounceDur)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", zap.Error(err))
		case <-timer.C:
			w.logger.Info("Reloading assets", zap.String("dir", w.store.Dir()))
			w.store.Reload()
		}
	}
}

// Done is closed once Run has returned.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func isAssetFile(path string) bool {
	switch filepath.Base(path) {
	case BlogFile, QuotesFile, TerminalFile:
		return true
	}
	return false
}
