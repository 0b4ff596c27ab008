package assistant

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/voicedesk/internal/artifact"
	"github.com/nguyentantai21042004/voicedesk/internal/conversation"
	"github.com/nguyentantai21042004/voicedesk/internal/extractor"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
	"github.com/nguyentantai21042004/voicedesk/internal/metrics"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
	"github.com/nguyentantai21042004/voicedesk/internal/transcriber"
)

type fakeTranscriber struct {
	segments []transcriber.Segment
	err      error
	calls    int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) ([]transcriber.Segment, error) {
	f.calls++
	return f.segments, f.err
}

func (f *fakeTranscriber) Available() bool { return true }

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
	enabled bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.reply(prompt)
}

func (f *fakeGenerator) Available() bool { return f.enabled }

func (f *fakeGenerator) count(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.prompts {
		if strings.Contains(p, substr) {
			n++
		}
	}
	return n
}

type countingExtractor struct {
	calls map[string]int
}

func (c *countingExtractor) Extract(name string, data []byte) (string, error) {
	c.calls[name]++
	if strings.HasSuffix(name, ".pdf") && string(data) == "broken" {
		return "", errors.New("not a pdf")
	}
	return "CSV Content:\n" + string(data), nil
}

type noRecap struct{}

func (noRecap) Pick(n int) int        { return 0 }
func (noRecap) Chance(p float64) bool { return false }

type fixture struct {
	assistant   Assistant
	transcriber *fakeTranscriber
	generator   *fakeGenerator
	extractor   *countingExtractor
	dir         string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	f := &fixture{
		transcriber: &fakeTranscriber{segments: []transcriber.Segment{
			{Start: 0, End: 2.5, Text: "We reviewed the budget."},
			{Start: 2.5, End: 5, Text: "Hiring is paused."},
		}},
		generator: &fakeGenerator{enabled: true, reply: func(prompt string) (string, error) {
			if strings.HasPrefix(prompt, "Create 3-5 bullet points") {
				return "- first point\n- second point", nil
			}
			return "A short answer.", nil
		}},
		extractor: &countingExtractor{calls: map[string]int{}},
		dir:       dir,
	}

	a := New(Deps{
		Transcriber: f.transcriber,
		Generator:   f.generator,
		Extractor:   f.extractor,
		Writer:      artifact.New(dir, ""),
		Metrics:     metrics.New(),
		Logger:      logger.Nop(),
		TempDir:     dir,
		Chat:        conversation.Options{HistoryWindow: 6, Chooser: noRecap{}},
	})
	a.(*implAssistant).now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	f.assistant = a
	return f
}

func (f *fixture) transcribed(t *testing.T) *session.State {
	t.Helper()
	st := session.NewState()
	require.NoError(t, f.assistant.TranscribeAudio(context.Background(), &st, "clip.webm", strings.NewReader("RIFF....")))
	return &st
}

func TestTranscribeAudio(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)

	assert.Equal(t, "[0.00s] We reviewed the budget.\n[2.50s] Hiring is paused.", st.OriginalTranscript)
	assert.Equal(t, st.OriginalTranscript, st.CurrentTranscript())
	assert.FileExists(t, st.AudioPath)
	assert.True(t, strings.HasSuffix(st.AudioPath, ".webm"))

	err := f.assistant.TranscribeAudio(context.Background(), st, "again.wav", strings.NewReader("data"))
	assert.ErrorIs(t, err, ErrAlreadyTranscribed)
	assert.Equal(t, 1, f.transcriber.calls)
}

func TestTranscribeAudioFailures(t *testing.T) {
	f := newFixture(t)
	st := session.NewState()

	err := f.assistant.TranscribeAudio(context.Background(), &st, "clip.wav", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyAudio)

	f.transcriber.segments = nil
	err = f.assistant.TranscribeAudio(context.Background(), &st, "clip.wav", strings.NewReader("data"))
	assert.ErrorIs(t, err, ErrNoSpeech)
	assert.False(t, st.HasTranscript())

	f.transcriber.err = errors.New("whisper crashed")
	err = f.assistant.TranscribeAudio(context.Background(), &st, "clip.wav", strings.NewReader("data"))
	assert.ErrorContains(t, err, "whisper crashed")
}

func TestEditFlowsDownstream(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	original := st.OriginalTranscript
	ctx := context.Background()

	assert.True(t, f.assistant.EditTranscript(ctx, st, "[0.00s] Edited text\r\nsecond line"))
	assert.Equal(t, original, st.OriginalTranscript)
	assert.Equal(t, "[0.00s] Edited text\nsecond line", st.CurrentTranscript())

	_, err := f.assistant.Summary(ctx, st)
	require.NoError(t, err)
	_, err = f.assistant.GenerateDeck(ctx, st, "Report", "Intro")
	require.NoError(t, err)
	_, err = f.assistant.Chat(ctx, st, "What changed?")
	require.NoError(t, err)

	assert.Equal(t, 3, f.generator.count("Edited text"))
	assert.Equal(t, 0, f.generator.count("Hiring is paused"))
}

func TestEditInvalidatesSummary(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	ctx := context.Background()

	_, err := f.assistant.Summary(ctx, st)
	require.NoError(t, err)
	assert.True(t, st.SummaryReady)

	assert.False(t, f.assistant.EditTranscript(ctx, st, st.Transcript))
	assert.True(t, st.SummaryReady)

	assert.True(t, f.assistant.EditTranscript(ctx, st, "new text"))
	assert.False(t, st.SummaryReady)
	assert.Empty(t, st.Summary)
}

func TestSummaryIsMemoized(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	ctx := context.Background()

	first, err := f.assistant.Summary(ctx, st)
	require.NoError(t, err)
	second, err := f.assistant.Summary(ctx, st)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, f.generator.prompts, 1)
}

func TestSummaryErrorIsRetried(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	ctx := context.Background()

	f.generator.reply = func(string) (string, error) { return "", errors.New("quota exceeded") }
	_, err := f.assistant.Summary(ctx, st)
	require.Error(t, err)
	assert.False(t, st.SummaryReady)
	assert.Equal(t, "❌ Error: quota exceeded", SummaryError(err))

	f.generator.reply = func(string) (string, error) { return "Recovered", nil }
	text, err := f.assistant.Summary(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "Recovered", text)
}

func TestGenerationRequirements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty := session.NewState()
	_, err := f.assistant.Summary(ctx, &empty)
	assert.ErrorIs(t, err, ErrNoTranscript)

	st := f.transcribed(t)
	f.generator.enabled = false
	_, err = f.assistant.GenerateDeck(ctx, st, "Report", "Intro")
	assert.ErrorIs(t, err, ErrGenerationUnavailable)
	assert.Equal(t, "Report", st.DeckTitle)
	assert.False(t, f.assistant.Capabilities().Generation)
}

func TestGenerateDeck(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)

	path, err := f.assistant.GenerateDeck(context.Background(), st, "Quarterly", "Introduction\r\nFindings\n\n")
	require.NoError(t, err)
	assert.Equal(t, path, st.DeckPath)
	assert.Contains(t, st.Artifacts(), path)
	assert.Equal(t, 2, f.generator.count("Create 3-5 bullet points"))
	assert.Equal(t, 1, f.generator.count("'Findings'"))
}

func TestGenerateDeckAbortsOnFailure(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	f.generator.reply = func(string) (string, error) { return "", errors.New("boom") }

	_, err := f.assistant.GenerateDeck(context.Background(), st, "Quarterly", "A\nB\nC")
	require.Error(t, err)
	assert.Empty(t, st.DeckPath)
	assert.Equal(t, 1, len(f.generator.prompts))
}

func TestChatRepeatedQuestion(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	ctx := context.Background()

	_, err := f.assistant.Chat(ctx, st, "What was decided?")
	require.NoError(t, err)
	reply, err := f.assistant.Chat(ctx, st, "  what was decided? ")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(reply.Content, conversation.RecapPhrases[0]+"\n\n"))
	assert.Equal(t, 4, st.Chat.Len())

	_, err = f.assistant.Chat(ctx, st, "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestUploadDocuments(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	ctx := context.Background()

	res := f.assistant.UploadDocuments(ctx, st, []Upload{
		{Name: "sales.csv", Data: []byte("region,total")},
		{Name: "notes.txt", Data: []byte("hi")},
		{Name: "bad.pdf", Data: []byte("broken")},
	})
	assert.Equal(t, []string{"sales.csv"}, res.Extracted)
	require.Len(t, res.Failed, 2)
	assert.ErrorIs(t, res.Failed[0].Err, extractor.ErrUnsupportedType)
	assert.Equal(t, "bad.pdf", res.Failed[1].Name)

	res = f.assistant.UploadDocuments(ctx, st, []Upload{{Name: "sales.csv", Data: []byte("changed")}})
	assert.Equal(t, []string{"sales.csv"}, res.Cached)
	assert.Equal(t, 1, f.extractor.calls["sales.csv"])

	_, err := f.assistant.Chat(ctx, st, "Totals?")
	require.NoError(t, err)
	assert.Equal(t, 1, f.generator.count("=== sales.csv ==="))
}

func TestExports(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	ctx := context.Background()
	f.assistant.EditTranscript(ctx, st, "edited")

	current, err := f.assistant.ExportTranscriptPDF(ctx, st, false)
	require.NoError(t, err)
	original, err := f.assistant.ExportTranscriptPDF(ctx, st, true)
	require.NoError(t, err)
	assert.Contains(t, current, "current_transcript")
	assert.Contains(t, original, "original_transcript")

	pdf1, err := f.assistant.ExportSummaryPDF(ctx, st)
	require.NoError(t, err)
	pdf2, err := f.assistant.ExportSummaryPDF(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, pdf1, pdf2)

	docx, err := f.assistant.ExportSummaryDocx(ctx, st)
	require.NoError(t, err)
	assert.FileExists(t, docx)
	assert.Equal(t, 1, f.generator.count("summar"))
}

func TestNewSessionRemovesArtifacts(t *testing.T) {
	f := newFixture(t)
	st := f.transcribed(t)
	ctx := context.Background()

	path, err := f.assistant.ExportTranscriptPDF(ctx, st, false)
	require.NoError(t, err)
	audio := st.AudioPath
	st.View = session.ViewChat

	f.assistant.NewSession(ctx, st)

	assert.Equal(t, session.NewState(), *st)
	for _, p := range []string{path, audio} {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), p)
	}
}
