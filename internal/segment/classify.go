package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier decides the structural kind of a trimmed block of text.
// Implementations must be pure and total.
type Classifier interface {
	Classify(text string) Kind
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(text string) Kind

func (f ClassifierFunc) Classify(text string) Kind { return f(text) }

// MarkerClassifier treats any text containing a pipe as a table row, and text
// that starts with one of Markers or with a section number 1..MaxSection
// (followed by '.', whitespace or nothing) as a heading.
//
// A prose line that merely contains a literal '|' is still a table row.
type MarkerClassifier struct {
	Markers    string
	MaxSection int
}

// Default matches the generation template: '#' headings and at most eight
// numbered top-level sections.
var Default Classifier = MarkerClassifier{Markers: "#", MaxSection: 8}

func (c MarkerClassifier) Classify(text string) Kind {
	if strings.Contains(text, "|") {
		return TableRow
	}
	if text == "" {
		return Body
	}
	if first, _ := utf8.DecodeRuneInString(text); c.Markers != "" && strings.ContainsRune(c.Markers, first) {
		return Heading
	}
	if c.isSectionNumber(text) {
		return Heading
	}
	return Body
}

func (c MarkerClassifier) isSectionNumber(text string) bool {
	d := text[0]
	if d < '1' || d > '9' || int(d-'0') > c.MaxSection {
		return false
	}
	if len(text) == 1 {
		return true
	}
	next := rune(text[1])
	return next == '.' || unicode.IsSpace(next)
}
