package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/voicedesk/internal/assistant"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

const maxChatFiles = 20

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.render(w, r, sess.State)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	st := sess.State
	to, err := session.ParseView(r.FormValue("view"))
	if err == nil {
		err = st.Navigate(to)
	}
	if err != nil {
		s.logger.Warn(r.Context(), "Navigation rejected: %v", err)
		st.SetNotice(session.NoticeError, "Cannot open that page: %v", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.assistant.NewSession(r.Context(), sess.State)
	redirectHome(w, r)
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	st := sess.State
	defer redirectHome(w, r)

	if !s.assistant.Capabilities().Transcription {
		st.SetNotice(session.NoticeError, "Transcription is unavailable: whisper.cpp is not installed or configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("audio")
	if err != nil {
		st.SetNotice(session.NoticeError, "Could not read the audio upload: %v", err)
		return
	}
	defer file.Close()

	if err := s.assistant.TranscribeAudio(r.Context(), st, header.Filename, file); err != nil {
		st.SetNotice(session.NoticeError, "%v", err)
		return
	}
	st.SetNotice(session.NoticeSuccess, "Transcription complete.")
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	st := sess.State
	if !st.HasTranscript() {
		st.SetNotice(session.NoticeError, "%v", assistant.ErrNoTranscript)
	} else if s.assistant.EditTranscript(r.Context(), st, r.FormValue("transcript")) {
		st.SetNotice(session.NoticeSuccess, "Transcript updated.")
	}
	redirectHome(w, r)
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	st := sess.State
	if _, err := s.assistant.GenerateDeck(r.Context(), st, r.FormValue("title"), r.FormValue("headings")); err != nil {
		st.SetNotice(session.NoticeError, "PPT Error: %v", err)
	} else {
		st.SetNotice(session.NoticeSuccess, "✅ Done!")
	}
	redirectHome(w, r)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	st := sess.State
	_, err := s.assistant.Chat(r.Context(), st, r.FormValue("prompt"))
	if err != nil && !errors.Is(err, assistant.ErrEmptyPrompt) {
		st.SetNotice(session.NoticeError, "%v", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleChatFiles(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	st := sess.State
	defer redirectHome(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		st.SetNotice(session.NoticeError, "Could not read the uploaded files: %v", err)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		st.SetNotice(session.NoticeInfo, "Choose at least one PDF or CSV file.")
		return
	}
	if len(headers) > maxChatFiles {
		headers = headers[:maxChatFiles]
	}

	uploads := make([]assistant.Upload, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			st.SetNotice(session.NoticeError, "Could not open %s: %v", h.Filename, err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			st.SetNotice(session.NoticeError, "Could not read %s: %v", h.Filename, err)
			return
		}
		uploads = append(uploads, assistant.Upload{Name: filepath.Base(h.Filename), Data: data})
	}

	res := s.assistant.UploadDocuments(r.Context(), st, uploads)
	st.SetNotice(uploadLevel(res), "%s", uploadSummary(res))
}

func uploadLevel(res assistant.UploadResult) session.NoticeLevel {
	if len(res.Failed) > 0 {
		return session.NoticeError
	}
	return session.NoticeSuccess
}

func uploadSummary(res assistant.UploadResult) string {
	var parts []string
	if len(res.Extracted) > 0 {
		parts = append(parts, "Processed "+strings.Join(res.Extracted, ", "))
	}
	if len(res.Cached) > 0 {
		parts = append(parts, "Already processed "+strings.Join(res.Cached, ", "))
	}
	for _, f := range res.Failed {
		parts = append(parts, fmt.Sprintf("Error processing %s: %v", f.Name, f.Err))
	}
	return strings.Join(parts, ". ")
}

// handleDownload serves a generated file. Transcript and summary files are
// produced on demand; the deck and the audio must already exist.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	st := sess.State
	ctx := r.Context()
	name := r.PathValue("artifact")

	var (
		path string
		err  error
	)
	switch name {
	case "current_transcript.pdf":
		path, err = s.assistant.ExportTranscriptPDF(ctx, st, false)
	case "original_transcript.pdf":
		path, err = s.assistant.ExportTranscriptPDF(ctx, st, true)
	case "summary.pdf":
		path, err = s.assistant.ExportSummaryPDF(ctx, st)
	case "summary.docx":
		path, err = s.assistant.ExportSummaryDocx(ctx, st)
	case "presentation.pptx":
		path = st.DeckPath
	case "audio":
		path = st.AudioPath
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error(ctx, "Download %s failed: %v", name, err)
		st.SetNotice(session.NoticeError, "Could not prepare %s: %v", name, err)
		redirectHome(w, r)
		return
	}
	if path == "" {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if ct, ok := contentTypes[filepath.Ext(name)]; ok {
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	w.Header().Set("Cache-Control", "no-store")
	http.ServeContent(w, r, filepath.Base(path), info.ModTime(), f)
}
