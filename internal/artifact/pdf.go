package artifact

import (
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	pdfFont       = "Arial"
	pdfUTF8Font   = "body"
	pdfFontSize   = 12
	pdfLineHeight = 10
)

// ErrUnsupportedText is returned when text needs characters the built-in
// PDF font cannot encode and no UTF-8 font is configured.
var ErrUnsupportedText = errors.New("text contains characters outside cp1252; configure pdf.font_path with a UTF-8 TrueType font")

// WritePDF renders text into an A4 PDF at path using a single 12pt font.
// Long text flows onto new pages automatically. With fontPath set the text
// is embedded as UTF-8; otherwise it must be representable in cp1252.
func WritePDF(path, text, fontPath string) error {
	doc := fpdf.New("P", "mm", "A4", "")

	body := text
	if fontPath != "" {
		doc.AddUTF8Font(pdfUTF8Font, "", fontPath)
		doc.SetFont(pdfUTF8Font, "", pdfFontSize)
	} else {
		encoded, err := charmap.Windows1252.NewEncoder().String(text)
		if err != nil {
			return fmt.Errorf("write pdf: %w", ErrUnsupportedText)
		}
		doc.SetFont(pdfFont, "", pdfFontSize)
		body = encoded
	}
	if err := doc.Error(); err != nil {
		return fmt.Errorf("load pdf font: %w", err)
	}

	doc.AddPage()
	doc.MultiCell(0, pdfLineHeight, body, "", "L", false)

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
