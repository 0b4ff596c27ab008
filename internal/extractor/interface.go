package extractor

// Extractor converts an uploaded reference document into plain text.
type Extractor interface {
	// Extract returns the text of the document named name. The file type is
	// chosen from the name's extension.
	Extract(name string, data []byte) (string, error)
}

// Document is an uploaded file after extraction.
type Document struct {
	Name string
	Text string
}
