package watcher

import "context"

// Watcher monitors an inbox directory and hands new files to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created file.
type EventHandler func(ctx context.Context, filePath string) error
