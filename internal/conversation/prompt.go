package conversation

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/voicedesk/internal/extractor"
)

// Grounding is what a chat answer is anchored to.
type Grounding struct {
	Transcript string
	Documents  []extractor.Document
}

const chatPrompt = `ROLE: Professional Human-like Assistant
CONTEXT: %s
%s
CONVERSATION HISTORY:
%s

GUIDELINES:
1. Respond naturally like a human colleague would
2. Maintain continuity - reference previous exchanges naturally
3. For repeated questions, acknowledge and vary responses
4. Keep tone professional but friendly
5. Answer based on both the audio content and any uploaded documents
6. If question is unrelated to available content, respond politely
7. You are a chatbot named "Chat with your voice and documents"
8. Use markdown formatting when appropriate
9. Keep responses concise but helpful
10. Reference specific documents when relevant
11. Never mention you're an AI or language model
12. Acknowledge previous interactions when relevant
CURRENT QUESTION: %s`

// BuildPrompt assembles the grounding prompt from the transcript, the
// uploaded documents, recent history and the new question.
func BuildPrompt(g Grounding, history []Message, question string) string {
	return fmt.Sprintf(chatPrompt, g.Transcript, documentContext(g.Documents), formatHistory(history), question)
}

func documentContext(docs []extractor.Document) string {
	if len(docs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nAdditional Reference Documents:\n")
	for _, d := range docs {
		fmt.Fprintf(&b, "=== %s ===\n%s\n\n", d.Name, d.Text)
	}
	return b.String()
}

func formatHistory(history []Message) string {
	if len(history) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(lines, "\n")
}
