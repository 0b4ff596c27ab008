package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/voicedesk/internal/extractor"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
)

type stubGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func (s *stubGenerator) Available() bool { return true }

type fixedChooser struct {
	pick   int
	chance bool
}

func (f fixedChooser) Pick(n int) int        { return f.pick % n }
func (f fixedChooser) Chance(p float64) bool { return f.chance }

func newManager(gen *stubGenerator, chooser PhraseChooser, addon float64) *Manager {
	return NewManager(gen, logger.Nop(), Options{HistoryWindow: 6, AddonProbability: addon, Chooser: chooser})
}

func TestAskAppendsBothMessages(t *testing.T) {
	gen := &stubGenerator{reply: "The meeting covered Q3."}
	m := newManager(gen, fixedChooser{}, 0)
	var log Log

	reply := m.Ask(context.Background(), &log, Grounding{Transcript: "[0.00s] Q3 review"}, "What was covered?")

	assert.Equal(t, Message{Role: RoleAssistant, Content: "The meeting covered Q3."}, reply)
	msgs := log.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleUser, Content: "What was covered?"}, msgs[0])
	assert.Equal(t, reply, msgs[1])

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "CONTEXT: [0.00s] Q3 review")
	assert.Contains(t, gen.prompts[0], "CURRENT QUESTION: What was covered?")
}

func TestAskRepeatedQuestionGetsRecap(t *testing.T) {
	gen := &stubGenerator{reply: "Budget was approved."}
	m := newManager(gen, fixedChooser{pick: 3}, 0)
	var log Log
	ctx := context.Background()

	first := m.Ask(ctx, &log, Grounding{}, "What was decided?")
	assert.Equal(t, "Budget was approved.", first.Content)

	second := m.Ask(ctx, &log, Grounding{}, "  what WAS decided?  ")
	assert.Equal(t, RecapPhrases[3]+"\n\nBudget was approved.", second.Content)

	startsWithRecap := false
	for _, p := range RecapPhrases {
		if strings.HasPrefix(second.Content, p) {
			startsWithRecap = true
		}
	}
	assert.True(t, startsWithRecap)
}

func TestAskDifferentQuestionNoRecap(t *testing.T) {
	gen := &stubGenerator{reply: "Answer."}
	m := newManager(gen, fixedChooser{}, 0)
	var log Log
	ctx := context.Background()

	m.Ask(ctx, &log, Grounding{}, "First?")
	reply := m.Ask(ctx, &log, Grounding{}, "Second?")
	assert.Equal(t, "Answer.", reply.Content)
}

func TestAskContinuationPhrase(t *testing.T) {
	gen := &stubGenerator{reply: "Answer."}
	m := newManager(gen, fixedChooser{pick: 1, chance: true}, 0.2)
	var log Log

	reply := m.Ask(context.Background(), &log, Grounding{}, "Q?")
	assert.Equal(t, "Answer.\n\n"+ContinuationPhrases[1], reply.Content)
}

func TestAskGenerationFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	m := newManager(gen, fixedChooser{chance: true}, 1)
	var log Log

	reply := m.Ask(context.Background(), &log, Grounding{}, "Q?")
	assert.Equal(t, "⚠️ Error: quota exceeded", reply.Content)
	assert.Equal(t, 2, log.Len())
}

func TestPromptUsesHistoryWindowAndDocuments(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	m := newManager(gen, fixedChooser{}, 0)
	var log Log
	ctx := context.Background()
	g := Grounding{
		Transcript: "transcript",
		Documents:  []extractor.Document{{Name: "sales.csv", Text: "CSV Content:\nnorth 120"}},
	}

	for _, q := range []string{"q1", "q2", "q3", "q4"} {
		m.Ask(ctx, &log, g, q)
	}

	last := gen.prompts[len(gen.prompts)-1]
	assert.Contains(t, last, "=== sales.csv ===\nCSV Content:\nnorth 120")
	assert.NotContains(t, last, "user: q1")
	assert.Contains(t, last, "user: q2")
	assert.Contains(t, last, "user: q4")
}

func TestLog(t *testing.T) {
	var log Log
	assert.Equal(t, "", log.LastUserMessage())
	assert.Nil(t, log.Last(3))

	log.Append(Message{Role: RoleUser, Content: "a"})
	log.Append(Message{Role: RoleAssistant, Content: "b"})
	assert.Equal(t, "a", log.LastUserMessage())
	assert.Len(t, log.Last(10), 2)

	msgs := log.Messages()
	msgs[0].Content = "mutated"
	assert.Equal(t, "a", log.Messages()[0].Content, "Messages must return a copy")

	log.Reset()
	assert.Equal(t, 0, log.Len())
}
