package httpserver

import (
	"context"
	"time"
)

// RunSweeper drops idle sessions every interval and removes their files. It
// returns when ctx is cancelled.
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Server) sweep(ctx context.Context) {
	expired := s.store.Sweep()
	for _, sess := range expired {
		sess.Lock()
		s.assistant.Discard(ctx, sess.State)
		sess.Unlock()
	}
	if len(expired) > 0 {
		s.logger.Info(ctx, "Expired %d idle sessions", len(expired))
	}
	s.metrics.SetSessions(s.store.Len())
}
