package assistant

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/voicedesk/internal/session"
	"github.com/nguyentantai21042004/voicedesk/internal/transcriber"
)

func (a *implAssistant) Capabilities() Capabilities {
	return Capabilities{
		Transcription: a.transcriber.Available(),
		Generation:    a.available(),
	}
}

// TranscribeAudio stores the clip and transcribes it. A session transcribes
// exactly one clip; later clips need a new session.
func (a *implAssistant) TranscribeAudio(ctx context.Context, st *session.State, filename string, audio io.Reader) error {
	if st.HasTranscript() {
		return ErrAlreadyTranscribed
	}

	audioPath, err := a.saveAudio(filename, audio)
	if err != nil {
		return err
	}
	st.AudioPath = audioPath
	st.Track(audioPath)

	segments, err := a.transcriber.Transcribe(ctx, audioPath)
	a.metrics.ObserveTranscription(err)
	if err != nil {
		a.logger.Error(ctx, "Transcription failed for %s: %v", filename, err)
		return fmt.Errorf("transcription failed: %w", err)
	}

	text := transcriber.Format(segments)
	if strings.TrimSpace(text) == "" {
		return ErrNoSpeech
	}

	st.SetTranscript(text)
	a.logger.Info(ctx, "Transcribed %s: %d segments", filename, len(segments))
	return nil
}

func (a *implAssistant) saveAudio(filename string, audio io.Reader) (string, error) {
	if err := os.MkdirAll(a.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".wav"
	}
	f, err := os.CreateTemp(a.tempDir, "audio-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, audio)
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("save audio: %w", err)
	}
	if n == 0 {
		os.Remove(f.Name())
		return "", ErrEmptyAudio
	}
	return f.Name(), nil
}

// EditTranscript applies a user edit. Browsers submit textarea content with
// CRLF line endings, so those are folded before comparing.
func (a *implAssistant) EditTranscript(ctx context.Context, st *session.State, text string) bool {
	if !st.HasTranscript() {
		return false
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !st.Edit(text) {
		return false
	}

	// The memoized summary was built from the previous text.
	st.Summary = ""
	st.SummaryReady = false
	st.SummaryPDFPath = ""

	a.logger.Debug(ctx, "Transcript edited (%d bytes)", len(text))
	return true
}
