package parser

import (
	"strings"
	"testing"
)

func TestSubtitleParser_SRTBasic(t *testing.T) {
	input := `1
00:00:01,000 --> 00:00:03,000
Hello and welcome to
the course.

2
00:00:03,200 --> 00:00:05,000
Today we cover chunking.
`
	p := &SubtitleParser{}
	tr, err := p.Parse(strings.NewReader(input), "lecture.srt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Title != "lecture" {
		t.Errorf("expected title %q, got %q", "lecture", tr.Title)
	}
	want := "Hello and welcome to the course. Today we cover chunking."
	if tr.Text != want {
		t.Errorf("expected %q, got %q", want, tr.Text)
	}
}

func TestSubtitleParser_LongGapStartsNewParagraph(t *testing.T) {
	input := `1
00:00:01,000 --> 00:00:02,000
First topic ends here.

2
00:00:10,000 --> 00:00:12,000
Second topic starts now.
`
	p := &SubtitleParser{}
	tr, err := p.Parse(strings.NewReader(input), "gap.srt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "First topic ends here.\n\nSecond topic starts now."
	if tr.Text != want {
		t.Errorf("expected paragraph break at cue gap, got %q", tr.Text)
	}
}

func TestSubtitleParser_WebVTT(t *testing.T) {
	input := `WEBVTT

NOTE created by export

00:01.000 --> 00:03.000
<v Speaker>Styled cue text.</v>

00:03.100 --> 00:04.000
Plain cue text.
`
	p := &SubtitleParser{}
	tr, err := p.Parse(strings.NewReader(input), "talk.vtt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Styled cue text. Plain cue text."
	if tr.Text != want {
		t.Errorf("expected tags stripped, got %q", tr.Text)
	}
}

func TestSubtitleParser_EmptyInput(t *testing.T) {
	p := &SubtitleParser{}
	tr, err := p.Parse(strings.NewReader(""), "empty.srt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Text != "" {
		t.Errorf("expected empty text, got %q", tr.Text)
	}
}

func TestParseCueTime(t *testing.T) {
	cases := []struct {
		in     string
		wantMs int64
		ok     bool
	}{
		{"00:00:01,000", 1000, true},
		{"01:02:03,500", 3723500, true},
		{"02:03.250", 123250, true},
		{"garbage", 0, false},
	}
	for _, c := range cases {
		d, ok := parseCueTime(c.in)
		if ok != c.ok {
			t.Errorf("parseCueTime(%q): expected ok=%v, got %v", c.in, c.ok, ok)
			continue
		}
		if ok && d.Milliseconds() != c.wantMs {
			t.Errorf("parseCueTime(%q): expected %dms, got %dms", c.in, c.wantMs, d.Milliseconds())
		}
	}
}
