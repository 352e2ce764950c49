package parser

import (
	"io"
	"strings"
)

// TextParser handles plain text and markdown. A banner written by the text
// exporter (title, "Generated on:" line, rule) is removed.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	text := strings.ReplaceAll(string(b), "\r\n", "\n")

	lines := strings.SplitN(text, "\n", 4)
	if len(lines) >= 3 && strings.HasPrefix(lines[1], generatedPrefix) && isRule(lines[2]) {
		if len(lines) == 4 {
			return strings.TrimLeft(lines[3], "\n"), nil
		}
		return "", nil
	}
	return text, nil
}

const generatedPrefix = "Generated on: "

func isRule(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= 10 && strings.Trim(line, "=") == ""
}
