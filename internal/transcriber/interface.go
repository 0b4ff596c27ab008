package transcriber

import "context"

// Transcriber turns an audio file into ordered transcript segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
	// Available reports whether ffmpeg and whisper.cpp can be executed.
	Available() bool
}
