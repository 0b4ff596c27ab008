// Package httpserver is the browser-facing transport: a cookie-keyed session
// per browser, one form handler per action and a renderer for the four views.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/nguyentantai21042004/voicedesk/internal/assistant"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
	"github.com/nguyentantai21042004/voicedesk/internal/metrics"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

const sessionCookie = "voicedesk_session"

// Server is the HTTP transport adapter for the assistant.
type Server struct {
	assistant assistant.Assistant
	store     *session.Store
	metrics   *metrics.Metrics
	logger    logger.Logger
	maxUpload int64
	templates *template.Template
	markdown  goldmark.Markdown
}

// Options configures a Server.
type Options struct {
	Assistant   assistant.Assistant
	Store       *session.Store
	Metrics     *metrics.Metrics
	Logger      logger.Logger
	MaxUploadMB int64
}

func New(opts Options) *Server {
	return &Server{
		assistant: opts.Assistant,
		store:     opts.Store,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		maxUpload: opts.MaxUploadMB << 20,
		templates: parseTemplates(),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.HandleFunc("GET /{$}", s.withSession(s.handleIndex))
	mux.HandleFunc("POST /navigate", s.withSession(s.handleNavigate))
	mux.HandleFunc("POST /session/new", s.withSession(s.handleNewSession))
	mux.HandleFunc("POST /audio", s.withSession(s.handleAudio))
	mux.HandleFunc("POST /transcript", s.withSession(s.handleTranscript))
	mux.HandleFunc("POST /ppt", s.withSession(s.handleDeck))
	mux.HandleFunc("POST /chat", s.withSession(s.handleChat))
	mux.HandleFunc("POST /chat/files", s.withSession(s.handleChatFiles))
	mux.HandleFunc("GET /download/{artifact}", s.withSession(s.handleDownload))

	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info(ctx, "Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

// withSession resolves the browser's session from its cookie and holds the
// session lock for the whole request.
func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}

		sess, created := s.store.GetOrCreate(id)
		if created {
			s.metrics.SetSessions(s.store.Len())
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := logger.WithSession(r.Context(), sess.ID)
		r = r.WithContext(ctx)

		sess.Lock()
		defer sess.Unlock()
		defer s.store.Touch(sess)

		s.logger.Debug(ctx, "%s %s (view %s)", r.Method, r.URL.Path, sess.State.View)
		next(w, r, sess)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	caps := s.assistant.Capabilities()
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":            true,
		"time":          time.Now().UTC().Format(time.RFC3339Nano),
		"sessions":      s.store.Len(),
		"transcription": caps.Transcription,
		"generation":    caps.Generation,
	})
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
