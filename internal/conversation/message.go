package conversation

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat entry. Messages are never modified once logged.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Log is the ordered, append-only chat history of a session.
type Log struct {
	messages []Message
}

func (l *Log) Append(m Message) {
	l.messages = append(l.messages, m)
}

func (l *Log) Len() int {
	return len(l.messages)
}

// Messages returns a copy of the whole history.
func (l *Log) Messages() []Message {
	return append([]Message(nil), l.messages...)
}

// Last returns a copy of the last n messages.
func (l *Log) Last(n int) []Message {
	if n <= 0 {
		return nil
	}
	if n > len(l.messages) {
		n = len(l.messages)
	}
	return append([]Message(nil), l.messages[len(l.messages)-n:]...)
}

// LastUserMessage returns the most recent user message content, or "".
func (l *Log) LastUserMessage() string {
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].Role == RoleUser {
			return l.messages[i].Content
		}
	}
	return ""
}

func (l *Log) Reset() {
	l.messages = nil
}

func normalizeQuestion(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
