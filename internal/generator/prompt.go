package generator

import (
	"fmt"
	"strings"
)

const summaryPrompt = `Create a professional summary from this transcript:
%s
Include key points, action items, and recommendations.
Use markdown formatting with headings and bullet points.`

const bulletPrompt = `Create 3-5 bullet points about '%s' using: %s`

// SummaryPrompt asks for a structured markdown summary of transcript.
func SummaryPrompt(transcript string) string {
	return fmt.Sprintf(summaryPrompt, transcript)
}

// BulletPrompt asks for 3-5 bullet points about heading grounded in transcript.
func BulletPrompt(heading, transcript string) string {
	return fmt.Sprintf(bulletPrompt, heading, transcript)
}

var bulletMarkers = []string{"-", "*", "•"}

// ParseBullets splits a model reply into slide bullets: one per non-empty
// line with any leading bullet marker removed. A marker only counts when
// whitespace or the end of the line follows it, so "-5%" and "**bold**" stay.
func ParseBullets(reply string) []string {
	var bullets []string
	for _, line := range strings.Split(reply, "\n") {
		line = stripBulletMarker(strings.TrimSpace(line))
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

func stripBulletMarker(line string) string {
	for _, marker := range bulletMarkers {
		rest, ok := strings.CutPrefix(line, marker)
		if !ok {
			continue
		}
		if rest == "" {
			return ""
		}
		if r := rest[0]; r == ' ' || r == '\t' {
			return strings.TrimSpace(rest)
		}
	}
	return line
}
