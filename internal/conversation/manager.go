package conversation

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/voicedesk/internal/generator"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
)

// Options tune the manager. A zero HistoryWindow means 6 and a nil Chooser
// means RandomChooser. AddonProbability is used as given; 0 disables the
// continuation phrase.
type Options struct {
	HistoryWindow    int
	AddonProbability float64
	Chooser          PhraseChooser
}

// Manager runs one chat turn at a time against a session's Log.
type Manager struct {
	gen     generator.Generator
	logger  logger.Logger
	window  int
	addonP  float64
	chooser PhraseChooser
}

// NewManager creates a Manager. A nil Chooser uses RandomChooser.
func NewManager(gen generator.Generator, log logger.Logger, opts Options) *Manager {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 6
	}
	if opts.Chooser == nil {
		opts.Chooser = RandomChooser()
	}
	return &Manager{
		gen:     gen,
		logger:  log,
		window:  opts.HistoryWindow,
		addonP:  opts.AddonProbability,
		chooser: opts.Chooser,
	}
}

// Ask appends prompt and the assistant's reply to log and returns the reply.
// Generation failures become a visible error reply; the log stays usable.
func (m *Manager) Ask(ctx context.Context, log *Log, g Grounding, prompt string) Message {
	// Only checked once at least one exchange exists.
	repeated := log.Len() >= 2 && normalizeQuestion(prompt) == normalizeQuestion(log.LastUserMessage())

	log.Append(Message{Role: RoleUser, Content: prompt})

	fullPrompt := BuildPrompt(g, log.Last(m.window), prompt)
	text, err := m.gen.Generate(ctx, fullPrompt)

	var reply Message
	if err != nil {
		m.logger.Warn(ctx, "Chat generation failed: %v", err)
		reply = Message{Role: RoleAssistant, Content: fmt.Sprintf("⚠️ Error: %v", err)}
	} else {
		reply = Message{Role: RoleAssistant, Content: m.decorate(text, repeated)}
	}

	log.Append(reply)
	return reply
}

func (m *Manager) decorate(text string, repeated bool) string {
	if repeated {
		text = RecapPhrases[m.chooser.Pick(len(RecapPhrases))] + "\n\n" + text
	}
	if m.addonP > 0 && m.chooser.Chance(m.addonP) {
		text += "\n\n" + ContinuationPhrases[m.chooser.Pick(len(ContinuationPhrases))]
	}
	return text
}
