package extractor

type implExtractor struct{}

// New creates an Extractor for PDF and CSV files.
func New() Extractor {
	return &implExtractor{}
}
