package segment

import (
	"strings"
	"testing"
)

func TestClassify_Examples(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"1. EXECUTIVE SUMMARY", Heading},
		{"| Alt | Strength | Risk |", TableRow},
		{"The client should consider...", Body},
		{"# Overview", Heading},
		{"## Details", Heading},
		{"8 RECOMMENDATIONS", Heading},
		{"9. Appendix", Body},
		{"10. Not a section", Body},
		{"1,000 units were ordered.", Body},
		{"See section 1. for details", Body},
		{"Use #tags sparingly", Body},
		{"A | B | C", TableRow},
		{"1. Heading | with pipe", TableRow},
		{"7", Heading},
		{"0. Zero", Body},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			if got := Default.Classify(tc.text); got != tc.want {
				t.Errorf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassify_Totality(t *testing.T) {
	inputs := []string{"x", "|", "#", "1", " ", "\t1.", "<br>", "ü", "1.2.3", "||||"}
	for _, in := range inputs {
		k := Default.Classify(in)
		if k != Heading && k != Body && k != TableRow {
			t.Errorf("Classify(%q) returned unknown kind %d", in, k)
		}
		if again := Default.Classify(in); again != k {
			t.Errorf("Classify(%q) not deterministic: %s then %s", in, k, again)
		}
	}
}

func TestClassify_CustomMarkers(t *testing.T) {
	c := MarkerClassifier{Markers: "#*", MaxSection: 3}
	if got := c.Classify("**Bold Heading**"); got != Heading {
		t.Errorf("expected heading for bold marker, got %s", got)
	}
	if got := c.Classify("4. Fourth"); got != Body {
		t.Errorf("expected body above MaxSection, got %s", got)
	}
}

func TestClassify_MultiByteMarkers(t *testing.T) {
	c := MarkerClassifier{Markers: "§#"}
	if got := c.Classify("§ 4 Scope"); got != Heading {
		t.Errorf("expected heading for section sign, got %s", got)
	}
	if got := c.Classify("Änderungen"); got != Body {
		t.Errorf("expected body for other non-ASCII start, got %s", got)
	}
	if got := (MarkerClassifier{Markers: "§"}).Classify("\xc2 broken"); got != Body {
		t.Errorf("expected body for invalid UTF-8, got %s", got)
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if segs := Split("", nil); len(segs) != 0 {
		t.Fatalf("expected no segments, got %d", len(segs))
	}
	if segs := Split("\n\n   \n\t\n", nil); len(segs) != 0 {
		t.Fatalf("expected no segments for blank input, got %d", len(segs))
	}
}

func TestSplit_BlankLineBlocks(t *testing.T) {
	doc := "1. EXECUTIVE SUMMARY\n\nOverview text.\nSecond line.\n\n\n\n| Alt | Strength |\n| A | B |\n"
	segs := Split(doc, nil)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	if segs[0].Kind != Heading || segs[0].Text != "1. EXECUTIVE SUMMARY" {
		t.Errorf("segment 0: got %s %q", segs[0].Kind, segs[0].Text)
	}
	if segs[1].Kind != Body || segs[1].Text != "Overview text.\nSecond line." {
		t.Errorf("segment 1: got %s %q", segs[1].Kind, segs[1].Text)
	}
	if segs[2].Kind != TableRow {
		t.Errorf("segment 2: expected table row, got %s", segs[2].Kind)
	}
	if segs[2].Raw != "| Alt | Strength |\n| A | B |" {
		t.Errorf("segment 2 raw: got %q", segs[2].Raw)
	}
	if segs[2].Text != "- Alt - Strength -\n- A - B -" {
		t.Errorf("segment 2 text: got %q", segs[2].Text)
	}
}

func TestSplit_CRLF(t *testing.T) {
	segs := Split("# Title\r\n\r\nBody line\r\n", nil)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Text != "# Title" || segs[1].Text != "Body line" {
		t.Errorf("unexpected texts %q, %q", segs[0].Text, segs[1].Text)
	}
}

func TestSplit_ParagraphConvention(t *testing.T) {
	// Paragraph-separated input is the single-line-block special case.
	paras := []string{"2. CLIENT'S BATNA", "We hold the stronger position.", "A | B | C"}
	segs := Split(strings.Join(paras, "\n\n"), nil)
	if len(segs) != len(paras) {
		t.Fatalf("expected %d segments, got %d", len(paras), len(segs))
	}
	wantKinds := []Kind{Heading, Body, TableRow}
	for i, s := range segs {
		if s.Kind != wantKinds[i] {
			t.Errorf("segment %d: expected %s, got %s", i, wantKinds[i], s.Kind)
		}
	}
	if segs[2].Text != "A - B - C" {
		t.Errorf("expected flattened table row, got %q", segs[2].Text)
	}
}

func TestSplit_BreakTagsSurviveCleaning(t *testing.T) {
	segs := Split("| Risk | Plan<br>Backup |", nil)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	want := "- Risk - Plan\nBackup -"
	if segs[0].Text != want {
		t.Errorf("expected %q, got %q", want, segs[0].Text)
	}
	if strings.ContainsAny(segs[0].Text, "<>") {
		t.Errorf("angle brackets should be stripped, got %q", segs[0].Text)
	}
}

func TestSplit_AngleBracketsStripped(t *testing.T) {
	segs := Split("Costs <b>rise</b> when x > y", nil)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != "Costs brise/b when x  y" {
		t.Errorf("unexpected cleaned text %q", segs[0].Text)
	}
}

func TestSplit_MarkupOnlyBlockDropped(t *testing.T) {
	segs := Split("Intro\n\n<>\n\nOutro", nil)
	if len(segs) != 2 {
		t.Fatalf("expected markup-only block to be dropped, got %d segments", len(segs))
	}
}

func TestSplit_CustomClassifier(t *testing.T) {
	allHeadings := ClassifierFunc(func(string) Kind { return Heading })
	segs := Split("a\n\nb | c", allHeadings)
	for i, s := range segs {
		if s.Kind != Heading {
			t.Errorf("segment %d: expected heading from custom classifier, got %s", i, s.Kind)
		}
	}
}

func TestSplitJoin_Idempotent(t *testing.T) {
	doc := `# BATNA Document

1. EXECUTIVE SUMMARY
The supplier market is concentrated.

| Alternatives Analysis | Strength Assessment | Weakness Evaluation |
|---|---|---|
| Dual sourcing | Leverage | Cost |

Plain closing paragraph with <br> a break.`

	first := Split(doc, nil)
	second := Split(Join(first), nil)
	if len(first) != len(second) {
		t.Fatalf("segment count changed: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind {
			t.Errorf("segment %d kind changed: %s then %s", i, first[i].Kind, second[i].Kind)
		}
		if first[i].Text != second[i].Text {
			t.Errorf("segment %d text changed: %q then %q", i, first[i].Text, second[i].Text)
		}
	}
}

func TestKindString(t *testing.T) {
	if Heading.String() != "heading" || Body.String() != "body" || TableRow.String() != "table_row" {
		t.Error("unexpected kind names")
	}
}
