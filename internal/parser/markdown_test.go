package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_FlattensHeadingsAndBody(t *testing.T) {
	input := `# Course Title

Intro text.

## Section A

Section A content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	tr, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First h1 becomes the title.
	if tr.Title != "Course Title" {
		t.Errorf("expected title %q, got %q", "Course Title", tr.Title)
	}

	for _, want := range []string{"Course Title", "Intro text.", "Section A", "Section A content.", "Section B content."} {
		if !strings.Contains(tr.Text, want) {
			t.Errorf("expected text to contain %q", want)
		}
	}
	if strings.Contains(tr.Text, "#") {
		t.Errorf("markdown syntax leaked into transcript: %q", tr.Text)
	}
}

func TestMarkdownParser_NoHeadingsUsesFilename(t *testing.T) {
	p := &MarkdownParser{}
	tr, err := p.Parse(strings.NewReader("Just prose, nothing else."), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Title != "plain" {
		t.Errorf("expected title %q, got %q", "plain", tr.Title)
	}
	if tr.Text != "Just prose, nothing else." {
		t.Errorf("unexpected text %q", tr.Text)
	}
}

func TestMarkdownParser_ListsAndCode(t *testing.T) {
	input := "## Topic\n\n- first item\n- second item\n\n```\ncode line\n```\n"
	p := &MarkdownParser{}
	tr, err := p.Parse(strings.NewReader(input), "mixed.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"first item", "second item", "code line"} {
		if !strings.Contains(tr.Text, want) {
			t.Errorf("expected text to contain %q, got %q", want, tr.Text)
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	tr, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Text != "" {
		t.Errorf("expected empty text, got %q", tr.Text)
	}
}
