// Package render turns a generated document into HTML for display.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown renders doc as HTML. Raw HTML in the source is omitted, so the
// result is safe to embed in a page.
func Markdown(doc string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(doc), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
