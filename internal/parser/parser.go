// Package parser reads a document file back into the plain text form the
// segmenter consumes: blocks separated by blank lines.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser converts a document file into segmentable text.
type Parser interface {
	Parse(r io.Reader) (string, error)
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", ".markdown", "":
		return &TextParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// joinBlocks drops empty blocks and separates the rest with a blank line.
func joinBlocks(blocks []string) string {
	kept := blocks[:0]
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}
