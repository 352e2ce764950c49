package parser

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/batnadoc/internal/export"
	"github.com/dgallion1/batnadoc/internal/segment"
)

var fixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

const fixtureDoc = "1. EXECUTIVE SUMMARY\n\nOverview text.\n\nA | B | C"

func exported(t *testing.T, format string) []byte {
	t.Helper()
	ex, err := export.New(format, export.Options{})
	if err != nil {
		t.Fatalf("exporter: %v", err)
	}
	data, err := ex.Export(segment.Split(fixtureDoc, nil), fixedTime)
	if err != nil {
		t.Fatalf("export %s: %v", format, err)
	}
	return data
}

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"doc.md", "*parser.TextParser", false},
		{"DOC.TXT", "*parser.TextParser", false},
		{"stdin", "*parser.TextParser", false},
		{"page.htm", "*parser.HTMLParser", false},
		{"doc.pdf", "*parser.PDFParser", false},
		{"doc.docx", "*parser.DOCXParser", false},
		{"doc.rtf", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ForFile(tc.name)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ForFile(%q) error = %v", tc.name, err)
			}
			if err == nil {
				if got := typeName(p); got != tc.want {
					t.Errorf("expected %s, got %s", tc.want, got)
				}
			}
		})
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}

func TestTextParser_PassesMarkdownThrough(t *testing.T) {
	got, err := (&TextParser{}).Parse(strings.NewReader("# Title\r\n\r\nBody"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "# Title\n\nBody" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestTextParser_StripsExportBanner(t *testing.T) {
	got, err := (&TextParser{}).Parse(bytes.NewReader(exported(t, "text")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	segs := segment.Split(got, nil)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %q", len(segs), got)
	}
	if segs[0].Kind != segment.Heading || segs[2].Text != "A - B - C" {
		t.Errorf("unexpected segments %+v", segs)
	}
}

func TestDOCXParser_ReadsExport(t *testing.T) {
	got, err := (&DOCXParser{}).Parse(bytes.NewReader(exported(t, "docx")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "1. EXECUTIVE SUMMARY\n\nOverview text.\n\nA - B - C"
	if got != want {
		t.Errorf("unexpected text:\n%q\nwant:\n%q", got, want)
	}
}

func TestDOCXParser_InvalidInput(t *testing.T) {
	if _, err := (&DOCXParser{}).Parse(strings.NewReader("not a zip")); err == nil {
		t.Error("expected error for invalid docx")
	}
}

func TestPDFParser_ReadsExport(t *testing.T) {
	got, err := (&PDFParser{}).Parse(bytes.NewReader(exported(t, "pdf")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Overview text.") {
		t.Errorf("expected body text in %q", got)
	}
}

func TestPDFParser_InvalidInput(t *testing.T) {
	if _, err := (&PDFParser{}).Parse(strings.NewReader("%PDF-garbage")); err == nil {
		t.Error("expected error for invalid pdf")
	}
}

func TestHTMLParser(t *testing.T) {
	page := `<html><head><title>x</title><style>p{}</style></head><body>
<aside><p>history</p></aside>
<article>
<h1>Executive Summary</h1>
<p>Overview<br>text.</p>
<table><thead><tr><th>Alt</th><th>Strength</th></tr></thead>
<tbody><tr><td>A</td><td>B</td></tr></tbody></table>
</article>
<script>var x;</script>
</body></html>`

	got, err := (&HTMLParser{}).Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "# Executive Summary\n\nOverview\ntext.\n\n| Alt | Strength |\n\n| A | B |"
	if got != want {
		t.Errorf("unexpected text:\n%q\nwant:\n%q", got, want)
	}

	segs := segment.Split(got, nil)
	kinds := []segment.Kind{segment.Heading, segment.Body, segment.TableRow, segment.TableRow}
	if len(segs) != len(kinds) {
		t.Fatalf("expected %d segments, got %d", len(kinds), len(segs))
	}
	for i, k := range kinds {
		if segs[i].Kind != k {
			t.Errorf("segment %d: expected %v, got %v", i, k, segs[i].Kind)
		}
	}
}
