package extractor

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedType is returned for files that are neither PDF nor CSV.
var ErrUnsupportedType = errors.New("unsupported document type")

var extraneousSpaces = regexp.MustCompile(`[ \t]+`)

// Supported reports whether name has an extension Extract understands.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".csv":
		return true
	}
	return false
}

func (e *implExtractor) Extract(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		text, err := pdfText(data)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", name, err)
		}
		return "PDF Content:\n" + text, nil
	case ".csv":
		text, err := csvText(data)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", name, err)
		}
		return "CSV Content:\n" + text, nil
	default:
		return "", fmt.Errorf("%s: %w", name, ErrUnsupportedType)
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	return strings.TrimSpace(extraneousSpaces.ReplaceAllString(builder.String(), " ")), nil
}

// csvText renders the table with a leading row index, aligned in columns.
func csvText(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\t"+strings.Join(records[0], "\t"))
	for i, row := range records[1:] {
		fmt.Fprintln(tw, strconv.Itoa(i)+"\t"+strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
