package export

import (
	"bytes"
	"strings"
	"time"

	"github.com/dgallion1/batnadoc/internal/segment"
	"github.com/fumiama/go-docx"
)

// DocxExporter builds a word-processor document: a centered title, a right
// aligned italic date line, a blank paragraph, then one block per segment.
// Headings use the Heading1 style; body text and table rows are plain
// paragraphs, table rows as flattened prose.
type DocxExporter struct {
	Options Options
}

func (e *DocxExporter) Format() Format { return FormatDocx }

func (e *DocxExporter) Export(segs []segment.Segment, generatedAt time.Time) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().Style("Title").Justification("center").AddText(e.Options.title())
	doc.AddParagraph().Justification("right").AddText("Generated on: " + generatedAt.Format(timestampLayout)).Italic()
	doc.AddParagraph()

	for _, s := range segs {
		// Each extra line of a block continues as its own normal paragraph.
		lines := strings.Split(s.Text, "\n")
		para := doc.AddParagraph()
		if s.Kind == segment.Heading {
			para.Style("Heading1")
		}
		para.AddText(lines[0])
		for _, line := range lines[1:] {
			doc.AddParagraph().AddText(line)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, &RenderError{Format: FormatDocx.Name, Segment: -1, Err: err}
	}
	return buf.Bytes(), nil
}
