package artifact

import (
	"fmt"
	"os"
	"strings"
)

type implWriter struct {
	dir      string
	fontPath string
}

// New creates a Writer that places files in dir. fontPath is an optional
// UTF-8 TrueType font for PDFs.
func New(dir, fontPath string) Writer {
	return &implWriter{dir: dir, fontPath: fontPath}
}

func (w *implWriter) PDF(text, name string) (string, error) {
	return w.write(name, ".pdf", func(path string) error { return WritePDF(path, text, w.fontPath) })
}

func (w *implWriter) Deck(deck Deck, name string) (string, error) {
	return w.write(name, ".pptx", func(path string) error { return WritePPTX(path, deck) })
}

func (w *implWriter) Docx(title, markdown, name string) (string, error) {
	return w.write(name, ".docx", func(path string) error { return WriteDocx(path, title, markdown) })
}

// write reserves a unique file named after name and fills it with fn. The
// file is removed again if fn fails so no partial artifact is left behind.
func (w *implWriter) write(name, ext string, fn func(path string) error) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	f, err := os.CreateTemp(w.dir, strings.TrimSuffix(name, ext)+"-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create artifact file: %w", err)
	}
	path := f.Name()
	f.Close()

	if err := fn(path); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
