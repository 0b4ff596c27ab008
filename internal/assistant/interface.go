package assistant

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/voicedesk/internal/conversation"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

// Assistant holds the operations behind every view. Callers must hold the
// session lock while calling any method with a *session.State.
type Assistant interface {
	Capabilities() Capabilities

	TranscribeAudio(ctx context.Context, st *session.State, filename string, audio io.Reader) error
	EditTranscript(ctx context.Context, st *session.State, text string) bool

	Summary(ctx context.Context, st *session.State) (string, error)
	GenerateDeck(ctx context.Context, st *session.State, title, headings string) (string, error)
	Chat(ctx context.Context, st *session.State, prompt string) (conversation.Message, error)
	UploadDocuments(ctx context.Context, st *session.State, uploads []Upload) UploadResult

	ExportTranscriptPDF(ctx context.Context, st *session.State, original bool) (string, error)
	ExportSummaryPDF(ctx context.Context, st *session.State) (string, error)
	ExportSummaryDocx(ctx context.Context, st *session.State) (string, error)

	// NewSession deletes the session's files and resets its state.
	NewSession(ctx context.Context, st *session.State)
	// Discard deletes the session's files without touching its state.
	Discard(ctx context.Context, st *session.State)
}

// Capabilities says which optional external services are usable.
type Capabilities struct {
	Transcription bool
	Generation    bool
}

// Upload is one reference document sent from the chat view.
type Upload struct {
	Name string
	Data []byte
}

// UploadResult reports what happened to each upload.
type UploadResult struct {
	Extracted []string
	Cached    []string
	Failed    []UploadFailure
}

type UploadFailure struct {
	Name string
	Err  error
}
