package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/batnadoc/internal/segment"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Every paragraph becomes a block; heading
// styled paragraphs get a "# " marker unless they already classify as
// headings. Title paragraphs and the exporter's date line are skipped.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var blocks []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		style := docxStyle(para)
		switch {
		case text == "":
			continue
		case strings.EqualFold(style, "Title"):
			continue
		case len(blocks) == 0 && strings.HasPrefix(text, generatedPrefix):
			continue
		case isHeadingStyle(style) && segment.Default.Classify(text) != segment.Heading:
			text = "# " + text
		}
		blocks = append(blocks, text)
	}
	return joinBlocks(blocks), nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func isHeadingStyle(style string) bool {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	return strings.HasPrefix(s, "heading")
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
