package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/voicedesk/internal/logger"
)

type implWatcher struct {
	inputDir      string
	extensions    map[string]bool
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settle        time.Duration
	wg            sync.WaitGroup
}

// Start blocks until ctx is cancelled, dispatching each new matching file to
// the handler. In-flight handlers are awaited before it returns.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Accepted formats: %s", strings.Join(w.formats(), ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.accepts(event.Name) {
				w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)
			if err := w.dispatch(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	select {
	case <-time.After(w.settle):
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) accepts(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *implWatcher) formats() []string {
	out := make([]string, 0, len(w.extensions))
	for ext := range w.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
