package assistant

import (
	"errors"
	"fmt"
)

var (
	ErrNoTranscript          = errors.New("no transcript yet; record or upload audio first")
	ErrAlreadyTranscribed    = errors.New("this session already has a transcript; start a new session to record again")
	ErrGenerationUnavailable = errors.New("text generation is not configured; set GEMINI_API_KEY")
	ErrEmptyAudio            = errors.New("the audio upload is empty")
	ErrNoSpeech              = errors.New("no speech was detected in the recording")
	ErrEmptyPrompt           = errors.New("question is empty")
)

// SummaryError renders a summary failure the way the summary view shows it.
func SummaryError(err error) string {
	return fmt.Sprintf("❌ Error: %v", err)
}
