package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	tr, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", tr.Title)
	}
	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if tr.Text != want {
		t.Errorf("expected text %q, got %q", want, tr.Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	tr, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", tr.Title)
	}
	if tr.Text != "" {
		t.Errorf("expected empty text, got %q", tr.Text)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Consecutive blank lines should not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	tr, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected text %q", tr.Text)
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	tr, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected text %q", tr.Text)
	}
}

func TestForFile_KnownExtensions(t *testing.T) {
	for _, name := range []string{"a.txt", "a.md", "a.srt", "a.vtt", "a.html", "a.pdf", "a.docx", "A.TXT"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("ForFile(%q): unexpected error %v", name, err)
		}
	}
}

func TestForFile_UnknownExtension(t *testing.T) {
	if _, err := ForFile("video.mp4"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("transcript.srt") {
		t.Error("expected .srt to be supported")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("expected .zip to be unsupported")
	}
}
