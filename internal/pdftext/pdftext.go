// Package pdftext hands the extractors their raw text: per-page text for
// the program documents and the full content of the configuration report.
// It knows nothing about the layouts — pages come back in natural reading
// order with whatever flattening the PDF text layer imposes.
package pdftext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Pages returns one string per page of the document. PDF pages come from
// the PDF text layer; a page whose text cannot be decoded yields an empty
// string (extraction is best-effort per page). Any other extension is read
// as plain text, split on form feeds, one page when there are none.
func Pages(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdfPages(path)
	}

	content, err := ReadAll(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(content, "\f"), nil
}

func pdfPages(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for n := 1; n <= total; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// ReadAll returns the whole content of a text document.
func ReadAll(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
