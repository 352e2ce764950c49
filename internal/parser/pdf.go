package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser extracts the plain text of each page, one block per page.
// Heading structure is not recoverable from a PDF.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader) (text string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	// The reader panics on some malformed input.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("extract pdf text: %v", rec)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, strings.TrimSpace(t))
	}
	return joinBlocks(pages), nil
}
