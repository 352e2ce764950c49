package export

import (
	"strings"
	"time"

	"github.com/dgallion1/batnadoc/internal/segment"
)

// TextExporter writes a plain text banner followed by each segment's cleaned
// text, one blank line apart.
type TextExporter struct {
	Options Options
}

func (e *TextExporter) Format() Format { return FormatText }

func (e *TextExporter) Export(segs []segment.Segment, generatedAt time.Time) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(e.Options.title())
	sb.WriteString("\n")
	sb.WriteString("Generated on: " + generatedAt.Format(timestampLayout) + "\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n\n\n")

	for _, s := range segs {
		sb.WriteString(s.Text)
		sb.WriteString("\n\n")
	}
	return []byte(sb.String()), nil
}
