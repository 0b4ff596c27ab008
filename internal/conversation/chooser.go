package conversation

import "math/rand/v2"

// PhraseChooser supplies the randomness behind reply variations so tests can
// make it deterministic.
type PhraseChooser interface {
	// Pick returns an index in [0, n).
	Pick(n int) int
	// Chance reports true with probability p.
	Chance(p float64) bool
}

type randomChooser struct{}

// RandomChooser returns a PhraseChooser backed by math/rand/v2.
func RandomChooser() PhraseChooser { return randomChooser{} }

func (randomChooser) Pick(n int) int        { return rand.IntN(n) }
func (randomChooser) Chance(p float64) bool { return rand.Float64() < p }

// RecapPhrases open a reply to a question that was just asked.
var RecapPhrases = []string{
	"I believe I already answered this, but to recap:",
	"As I mentioned earlier:",
	"Let me rephrase my previous response:",
	"To reiterate what I shared before:",
	"Just to summarize again:",
}

// ContinuationPhrases are occasionally appended to a reply.
var ContinuationPhrases = []string{
	"Let me know if you'd like me to elaborate on any part.",
	"Does this help answer your question?",
	"I'm happy to discuss this further if needed.",
	"What else would you like to know about this?",
	"Would you like me to approach this from a different angle?",
}
