package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoHeadings is returned when a deck is requested without any heading.
var ErrNoHeadings = errors.New("at least one heading is required")

// Slide is one content slide: a heading and its bullet points.
type Slide struct {
	Heading string
	Bullets []string
}

// Deck is a title slide followed by content slides in order.
type Deck struct {
	Title    string
	Subtitle string
	Slides   []Slide
}

// BulletSource produces the bullet points for one heading.
type BulletSource func(ctx context.Context, heading string) ([]string, error)

// SplitHeadings returns the non-empty, trimmed lines of raw.
func SplitHeadings(raw string) []string {
	var headings []string
	for _, line := range strings.Split(raw, "\n") {
		if h := strings.TrimSpace(line); h != "" {
			headings = append(headings, h)
		}
	}
	return headings
}

// BuildDeck assembles a deck for title and the newline separated headings,
// asking source for each heading's bullets. The first failure aborts.
func BuildDeck(ctx context.Context, title, headings string, now time.Time, source BulletSource) (Deck, error) {
	list := SplitHeadings(headings)
	if len(list) == 0 {
		return Deck{}, ErrNoHeadings
	}

	deck := Deck{
		Title:    strings.TrimSpace(title),
		Subtitle: "Generated " + now.Format("02 Jan 2006 15:04"),
		Slides:   make([]Slide, 0, len(list)),
	}
	for _, heading := range list {
		bullets, err := source(ctx, heading)
		if err != nil {
			return Deck{}, fmt.Errorf("bullets for %q: %w", heading, err)
		}
		deck.Slides = append(deck.Slides, Slide{Heading: heading, Bullets: bullets})
	}
	return deck, nil
}
