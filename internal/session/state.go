package session

import (
	"fmt"

	"github.com/nguyentantai21042004/voicedesk/internal/conversation"
	"github.com/nguyentantai21042004/voicedesk/internal/extractor"
)

// Default values for the slide-deck form.
const (
	DefaultDeckTitle    = "Voice Analysis Report"
	DefaultDeckHeadings = "Introduction\nFindings\nRecommendations"
)

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a one-shot message shown on the next render.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// State is everything one browser session knows. It is only touched while
// the owning Session is locked.
type State struct {
	View View

	// OriginalTranscript never changes once set; Transcript is the editable copy.
	OriginalTranscript string
	Transcript         string
	Edited             bool
	AudioPath          string

	Summary      string
	SummaryReady bool

	DeckTitle    string
	DeckHeadings string
	DeckPath     string

	SummaryPDFPath string

	Chat conversation.Log

	docNames []string
	docs     map[string]string

	// artifacts lists every file generated for this session.
	artifacts []string

	notice *Notice
}

// NewState returns a session state at its initial values.
func NewState() State {
	return State{
		View:         ViewMain,
		DeckTitle:    DefaultDeckTitle,
		DeckHeadings: DefaultDeckHeadings,
	}
}

// Reset returns every field to its initial value and routes to the main view.
func (s *State) Reset() {
	*s = NewState()
}

func (s *State) HasTranscript() bool {
	return s.OriginalTranscript != ""
}

// CurrentTranscript is what downstream generation must use: the edited copy
// once an edit happened, the original otherwise.
func (s *State) CurrentTranscript() string {
	if s.Edited {
		return s.Transcript
	}
	return s.OriginalTranscript
}

// SetTranscript stores a freshly produced transcript as both original and
// working copy.
func (s *State) SetTranscript(text string) {
	s.OriginalTranscript = text
	s.Transcript = text
	s.Edited = false
}

// Edit replaces the working transcript. It reports whether anything changed;
// an unchanged submission leaves the edit flag alone.
func (s *State) Edit(text string) bool {
	if text == s.Transcript {
		return false
	}
	s.Transcript = text
	s.Edited = true
	return true
}

// Navigate moves to view to if the transition table allows it.
func (s *State) Navigate(to View) error {
	if s.View == to {
		return nil
	}
	if !CanTransition(s.View, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.View, to)
	}
	if needsTranscript[to] && !s.HasTranscript() {
		return fmt.Errorf("%w: %s needs a transcript", ErrInvalidTransition, to)
	}
	s.View = to
	return nil
}

func (s *State) HasDocument(name string) bool {
	_, ok := s.docs[name]
	return ok
}

// AddDocument caches extracted text under name. Existing entries are kept.
func (s *State) AddDocument(name, text string) {
	if s.docs == nil {
		s.docs = make(map[string]string)
	}
	if _, ok := s.docs[name]; ok {
		return
	}
	s.docs[name] = text
	s.docNames = append(s.docNames, name)
}

// Documents returns cached documents in upload order.
func (s *State) Documents() []extractor.Document {
	docs := make([]extractor.Document, 0, len(s.docNames))
	for _, name := range s.docNames {
		docs = append(docs, extractor.Document{Name: name, Text: s.docs[name]})
	}
	return docs
}

// Track records a generated file so it can be removed with the session.
func (s *State) Track(path string) {
	if path != "" {
		s.artifacts = append(s.artifacts, path)
	}
}

func (s *State) Artifacts() []string {
	return append([]string(nil), s.artifacts...)
}

func (s *State) SetNotice(level NoticeLevel, format string, args ...any) {
	s.notice = &Notice{Level: level, Text: fmt.Sprintf(format, args...)}
}

// TakeNotice returns the pending notice and clears it.
func (s *State) TakeNotice() *Notice {
	n := s.notice
	s.notice = nil
	return n
}
