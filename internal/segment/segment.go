package segment

import (
	"regexp"
	"strings"
)

// Kind is the structural role of a segment.
type Kind int

const (
	Body Kind = iota
	Heading
	TableRow
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case TableRow:
		return "table_row"
	default:
		return "body"
	}
}

// Segment is one classified block of a generated document.
type Segment struct {
	Kind Kind   // Derived at creation
	Text string // Cleaned text: pipes flattened to " - ", angle brackets removed
	Raw  string // Block as it appeared in the source, pipes intact
}

var (
	breakRe = regexp.MustCompile(`(?i)<br\s*/?>`)
	pipeRe  = regexp.MustCompile(`[ \t]*\|[ \t]*`)
)

// Split breaks a document into segments. Consecutive non-blank lines form one
// block; a blank or whitespace-only line ends it. A nil classifier means
// Default.
func Split(doc string, c Classifier) []Segment {
	if c == nil {
		c = Default
	}

	var segs []Segment
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if seg, ok := newSegment(current.String(), c); ok {
			segs = append(segs, seg)
		}
		current.Reset()
	}

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	return segs
}

// Join reassembles segments from their raw forms, one blank line apart.
// Split(Join(segs)) yields the same kinds in the same order.
func Join(segs []Segment) string {
	raws := make([]string, 0, len(segs))
	for _, s := range segs {
		raws = append(raws, s.Raw)
	}
	return strings.Join(raws, "\n\n")
}

func newSegment(raw string, c Classifier) (Segment, bool) {
	text := Clean(raw)
	if text == "" {
		return Segment{}, false
	}
	kind := c.Classify(raw)
	if kind != TableRow {
		kind = c.Classify(text)
	}
	return Segment{Kind: kind, Text: text, Raw: raw}, true
}

// Clean flattens a raw block for prose-only renderers. Literal <br> tags
// become line breaks, pipes become " - " and remaining angle brackets are
// dropped.
func Clean(raw string) string {
	s := breakRe.ReplaceAllString(raw, "\n")
	s = pipeRe.ReplaceAllString(s, " - ")
	s = strings.NewReplacer("<", "", ">", "").Replace(s)

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
