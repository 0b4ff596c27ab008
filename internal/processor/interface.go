package processor

import "context"

// AudioExtensions are the inbox file types the pipeline accepts.
var AudioExtensions = []string{".wav", ".mp3", ".m4a", ".webm", ".ogg", ".flac"}

// Processor turns one recording dropped into the inbox into transcript and
// summary files in the output directory.
type Processor interface {
	Process(ctx context.Context, audioPath string) error
}
