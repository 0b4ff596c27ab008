package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

// ExportTranscriptPDF writes the current (or original) transcript as a PDF.
func (a *implAssistant) ExportTranscriptPDF(ctx context.Context, st *session.State, original bool) (string, error) {
	if !st.HasTranscript() {
		return "", ErrNoTranscript
	}

	text, name := st.CurrentTranscript(), "current_transcript"
	if original {
		text, name = st.OriginalTranscript, "original_transcript"
	}

	path, err := a.writer.PDF(text, name)
	a.metrics.ObserveArtifact("pdf", err)
	if err != nil {
		return "", fmt.Errorf("write transcript pdf: %w", err)
	}
	st.Track(path)
	return path, nil
}

// ExportSummaryPDF writes the summary as a PDF, reusing an earlier export.
func (a *implAssistant) ExportSummaryPDF(ctx context.Context, st *session.State) (string, error) {
	if st.SummaryPDFPath != "" && fileExists(st.SummaryPDFPath) {
		return st.SummaryPDFPath, nil
	}

	summary, err := a.Summary(ctx, st)
	if err != nil {
		return "", err
	}

	path, err := a.writer.PDF(summary, "summary")
	a.metrics.ObserveArtifact("pdf", err)
	if err != nil {
		return "", fmt.Errorf("write summary pdf: %w", err)
	}
	st.SummaryPDFPath = path
	st.Track(path)
	return path, nil
}

// ExportSummaryDocx writes the summary as a styled Word document.
func (a *implAssistant) ExportSummaryDocx(ctx context.Context, st *session.State) (string, error) {
	summary, err := a.Summary(ctx, st)
	if err != nil {
		return "", err
	}

	path, err := a.writer.Docx("Summary", summary, "summary")
	a.metrics.ObserveArtifact("docx", err)
	if err != nil {
		return "", fmt.Errorf("write summary docx: %w", err)
	}
	st.Track(path)
	return path, nil
}

func (a *implAssistant) NewSession(ctx context.Context, st *session.State) {
	a.Discard(ctx, st)
	st.Reset()
	a.logger.Info(ctx, "Session reset")
}

func (a *implAssistant) Discard(ctx context.Context, st *session.State) {
	for _, path := range st.Artifacts() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			a.logger.Warn(ctx, "Failed to remove %s: %v", path, err)
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
