package httpserver

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/nguyentantai21042004/voicedesk/internal/assistant"
	"github.com/nguyentantai21042004/voicedesk/internal/conversation"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{"isUser": isUser}).ParseFS(templateFS, "templates/*.html"))
}

type chatEntry struct {
	Role string
	HTML template.HTML
}

type pageData struct {
	View   string
	Notice *session.Notice
	Caps   assistant.Capabilities

	HasTranscript bool
	Transcript    string
	Edited        bool
	HasAudio      bool

	Summary      template.HTML
	SummaryError string

	DeckTitle    string
	DeckHeadings string
	DeckReady    bool

	Messages  []chatEntry
	Documents []string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, st *session.State) {
	ctx := r.Context()
	data := pageData{
		View:          st.View.String(),
		Notice:        st.TakeNotice(),
		Caps:          s.assistant.Capabilities(),
		HasTranscript: st.HasTranscript(),
		Transcript:    st.Transcript,
		Edited:        st.Edited,
		HasAudio:      st.AudioPath != "",
		DeckTitle:     st.DeckTitle,
		DeckHeadings:  st.DeckHeadings,
		DeckReady:     st.DeckPath != "",
	}

	switch st.View {
	case session.ViewSummary:
		s.fillSummary(ctx, st, &data)
	case session.ViewChat:
		for _, m := range st.Chat.Messages() {
			data.Messages = append(data.Messages, chatEntry{Role: string(m.Role), HTML: s.markdownHTML(ctx, m.Content)})
		}
		for _, d := range st.Documents() {
			data.Documents = append(data.Documents, d.Name)
		}
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error(ctx, "Render %s failed: %v", data.View, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fillSummary(ctx context.Context, st *session.State, data *pageData) {
	if !data.Caps.Generation {
		return
	}
	summary, err := s.assistant.Summary(ctx, st)
	if err != nil {
		data.SummaryError = assistant.SummaryError(err)
		return
	}
	data.Summary = s.markdownHTML(ctx, summary)
}

// markdownHTML renders model output. Raw HTML in the source is escaped.
func (s *Server) markdownHTML(ctx context.Context, md string) template.HTML {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(md), &buf); err != nil {
		s.logger.Warn(ctx, "Markdown render failed: %v", err)
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func isUser(role string) bool { return role == string(conversation.RoleUser) }
