package render

import (
	"strings"
	"testing"
)

func TestMarkdown_Headings(t *testing.T) {
	out, err := Markdown("# 1. EXECUTIVE SUMMARY\n\nOverview text.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<h1>1. EXECUTIVE SUMMARY</h1>") {
		t.Errorf("expected heading, got %q", s)
	}
	if !strings.Contains(s, "<p>Overview text.</p>") {
		t.Errorf("expected paragraph, got %q", s)
	}
}

func TestMarkdown_Table(t *testing.T) {
	out, err := Markdown("| Alt | Strength |\n|---|---|\n| A | B |")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Errorf("expected GFM table, got %q", out)
	}
}

func TestMarkdown_RawHTMLOmitted(t *testing.T) {
	out, err := Markdown("<script>alert(1)</script>\n\ntext")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Errorf("raw html leaked into output: %q", out)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	out, err := Markdown("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
