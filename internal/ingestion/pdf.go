package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pageSource is the slice of a PDF reader the page joiner needs
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

type pdfPages struct {
	reader *pdf.Reader
}

func (p pdfPages) NumPage() int {
	return p.reader.NumPage()
}

// PageText returns the plain text of page i (1-based). Pages without a content object read as blank.
func (p pdfPages) PageText(i int) (string, error) {
	page := p.reader.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func extractPDF(data []byte) (text string, pages int, err error) {
	// the pdf parser panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	return joinPages(pdfPages{reader: reader})
}

// joinPages concatenates page text with a blank line between pages.
// Zero pages and pages without any text are distinct failures.
func joinPages(src pageSource) (string, int, error) {
	count := src.NumPage()
	if count == 0 {
		return "", 0, ErrNoPages
	}

	texts := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		text, err := src.PageText(i)
		if err != nil {
			return "", count, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			texts = append(texts, trimmed)
		}
	}

	if len(texts) == 0 {
		return "", count, ErrNoTextLayer
	}
	return strings.Join(texts, "\n\n"), count, nil
}
