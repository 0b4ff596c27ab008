package transcriber

import (
	"fmt"
	"strings"
)

// Segment is one timestamped piece of a transcript. Times are in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Format renders segments as one "[12.34s] text" line each.
func Format(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("[%.2fs] %s", seg.Start, seg.Text))
	}
	return strings.Join(lines, "\n")
}
