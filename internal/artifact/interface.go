package artifact

// Writer produces downloadable files under a temp directory and returns
// their paths.
type Writer interface {
	PDF(text, name string) (string, error)
	Deck(deck Deck, name string) (string, error)
	Docx(title, markdown, name string) (string, error)
}
