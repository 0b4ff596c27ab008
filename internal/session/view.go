package session

import (
	"errors"
	"fmt"
)

// View is the page a session is currently looking at.
type View string

const (
	ViewMain    View = "main"
	ViewSummary View = "summary"
	ViewPPT     View = "ppt"
	ViewChat    View = "chat"
)

var (
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrUnknownView       = errors.New("unknown view")
)

// transitions lists, per view, where its navigation buttons may lead.
// "New Session" is not a transition: Reset always lands on ViewMain.
var transitions = map[View][]View{
	ViewMain:    {ViewSummary, ViewPPT, ViewChat},
	ViewSummary: {ViewMain},
	ViewPPT:     {ViewMain},
	ViewChat:    {ViewMain},
}

// needsTranscript marks views that only make sense once audio was transcribed.
var needsTranscript = map[View]bool{
	ViewSummary: true,
	ViewPPT:     true,
	ViewChat:    true,
}

// ParseView maps a form value to a View.
func ParseView(s string) (View, error) {
	v := View(s)
	if _, ok := transitions[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
	return v, nil
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to View) bool {
	for _, v := range transitions[from] {
		if v == to {
			return true
		}
	}
	return false
}

func (v View) String() string { return string(v) }
