package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/voicedesk/internal/artifact"
	"github.com/nguyentantai21042004/voicedesk/internal/conversation"
	"github.com/nguyentantai21042004/voicedesk/internal/generator"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

func (a *implAssistant) requireGeneration(st *session.State) error {
	if !st.HasTranscript() {
		return ErrNoTranscript
	}
	if !a.available() {
		return ErrGenerationUnavailable
	}
	return nil
}

// Summary returns the session summary, generating it on first use only.
// Failures are not memoized so the next visit can retry.
func (a *implAssistant) Summary(ctx context.Context, st *session.State) (string, error) {
	if st.SummaryReady {
		return st.Summary, nil
	}
	if err := a.requireGeneration(st); err != nil {
		return "", err
	}

	text, err := a.summaries.Generate(ctx, generator.SummaryPrompt(st.CurrentTranscript()))
	if err != nil {
		a.logger.Error(ctx, "Summary generation failed: %v", err)
		return "", err
	}

	st.Summary = strings.TrimSpace(text)
	st.SummaryReady = true
	return st.Summary, nil
}

// GenerateDeck builds a slide deck for title and the newline separated
// headings. The form values are kept so the view can show them again.
func (a *implAssistant) GenerateDeck(ctx context.Context, st *session.State, title, headings string) (string, error) {
	st.DeckTitle = title
	st.DeckHeadings = strings.ReplaceAll(headings, "\r\n", "\n")

	if err := a.requireGeneration(st); err != nil {
		return "", err
	}

	transcript := st.CurrentTranscript()
	bullets := func(ctx context.Context, heading string) ([]string, error) {
		text, err := a.bullets.Generate(ctx, generator.BulletPrompt(heading, transcript))
		if err != nil {
			return nil, err
		}
		return generator.ParseBullets(text), nil
	}

	deck, err := artifact.BuildDeck(ctx, title, st.DeckHeadings, a.now(), bullets)
	if err != nil {
		a.metrics.ObserveArtifact("pptx", err)
		return "", fmt.Errorf("build deck: %w", err)
	}

	path, err := a.writer.Deck(deck, "presentation")
	a.metrics.ObserveArtifact("pptx", err)
	if err != nil {
		return "", fmt.Errorf("write deck: %w", err)
	}

	st.DeckPath = path
	st.Track(path)
	a.logger.Info(ctx, "Deck written: %s (%d slides)", path, len(deck.Slides)+1)
	return path, nil
}

// Chat runs one conversation turn grounded in the current transcript and the
// uploaded documents.
func (a *implAssistant) Chat(ctx context.Context, st *session.State, prompt string) (conversation.Message, error) {
	if strings.TrimSpace(prompt) == "" {
		return conversation.Message{}, ErrEmptyPrompt
	}
	if !st.HasTranscript() {
		return conversation.Message{}, ErrNoTranscript
	}

	g := conversation.Grounding{
		Transcript: st.CurrentTranscript(),
		Documents:  st.Documents(),
	}
	return a.chat.Ask(ctx, &st.Chat, g, prompt), nil
}
