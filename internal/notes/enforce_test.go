package notes

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// sentenceBody builds a body of n sentences with wordsPer words each.
func sentenceBody(n, wordsPer int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		for w := 0; w < wordsPer; w++ {
			if w > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "w%d", i*wordsPer+w)
		}
		sb.WriteString(".")
	}
	return sb.String()
}

func TestEnforceWordLimit_UnderLimitUnchanged(t *testing.T) {
	doc := Document{{Title: "X", Body: sentenceBody(3, 10)}} // 30 words
	out, err := EnforceWordLimit(doc, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, doc) {
		t.Errorf("expected document unchanged, got %+v", out)
	}
}

func TestEnforceWordLimit_SplitsInto3Continuations(t *testing.T) {
	// 120 words in 10-word sentences with a 50-word limit: exactly 3
	// sections of 50, 50, 20 words.
	doc := Document{{Title: "X", Body: sentenceBody(12, 10)}}
	out, err := EnforceWordLimit(doc, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(out))
	}

	wantTitles := []string{"X", "X (cont. 2)", "X (cont. 3)"}
	for i, want := range wantTitles {
		if out[i].Title != want {
			t.Errorf("section %d: expected title %q, got %q", i, want, out[i].Title)
		}
		if n := out[i].Words(); n > 50 {
			t.Errorf("section %d: %d words exceeds limit 50", i, n)
		}
	}
}

func TestEnforceWordLimit_GreedyPacking(t *testing.T) {
	// Sentences of 20 words with limit 50: each piece should pack two
	// sentences (40 words), not stop at the first boundary.
	doc := Document{{Title: "T", Body: sentenceBody(4, 20)}}
	out, err := EnforceWordLimit(doc, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(out))
	}
	if n := out[0].Words(); n != 40 {
		t.Errorf("expected first piece packed to 40 words, got %d", n)
	}
}

func TestEnforceWordLimit_NoWordsLostOrDuplicated(t *testing.T) {
	body := sentenceBody(17, 7) // 119 words, odd sentence size
	doc := Document{{Title: "X", Body: body}}
	out, err := EnforceWordLimit(doc, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, sec := range out {
		got = append(got, strings.Fields(sec.Body)...)
	}
	want := strings.Fields(body)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("word sequence changed: expected %d words, got %d", len(want), len(got))
	}
}

func TestEnforceWordLimit_OversizedSentenceHardSplit(t *testing.T) {
	// One 130-word sentence with no internal punctuation.
	words := make([]string, 130)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	doc := Document{{Title: "Long", Body: strings.Join(words, " ") + "."}}

	out, err := EnforceWordLimit(doc, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 sections from hard split, got %d", len(out))
	}
	for i, sec := range out {
		if n := sec.Words(); n > 50 {
			t.Errorf("section %d: %d words exceeds limit", i, n)
		}
	}
	if out[1].Title != "Long (cont. 2)" || out[2].Title != "Long (cont. 3)" {
		t.Errorf("unexpected continuation titles: %q, %q", out[1].Title, out[2].Title)
	}
}

func TestEnforceWordLimit_Idempotent(t *testing.T) {
	doc := Document{
		{Title: "A", Body: sentenceBody(12, 10)},
		{Title: "B", Body: sentenceBody(2, 10)},
	}
	once, err := EnforceWordLimit(doc, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := EnforceWordLimit(once, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("expected enforcement to be idempotent")
	}
}

func TestEnforceWordLimit_InputNotMutated(t *testing.T) {
	body := sentenceBody(12, 10)
	doc := Document{{Title: "X", Body: body}}
	if _, err := EnforceWordLimit(doc, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc[0].Body != body || doc[0].Title != "X" {
		t.Error("input document was mutated")
	}
}

func TestEnforceWordLimit_InvalidLimit(t *testing.T) {
	doc := Document{{Title: "X", Body: "some words"}}
	for _, limit := range []int{0, -5} {
		if _, err := EnforceWordLimit(doc, limit); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("limit %d: expected ErrInvalidLimit, got %v", limit, err)
		}
	}
}

func TestEnforceWordLimit_EmptyDocument(t *testing.T) {
	out, err := EnforceWordLimit(Document{}, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %d sections", len(out))
	}
}

func TestEnforceWordLimit_MixedSentenceAndHardSplits(t *testing.T) {
	// A normal sentence, then a 60-word run-on, then another sentence.
	long := make([]string, 60)
	for i := range long {
		long[i] = fmt.Sprintf("x%d", i)
	}
	body := "Short opener here. " + strings.Join(long, " ") + ". Final sentence closes it."
	doc := Document{{Title: "M", Body: body}}

	out, err := EnforceWordLimit(doc, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, sec := range out {
		if n := sec.Words(); n > 50 {
			t.Errorf("section %d: %d words exceeds limit", i, n)
		}
	}
	var got []string
	for _, sec := range out {
		got = append(got, strings.Fields(sec.Body)...)
	}
	if want := strings.Fields(body); !reflect.DeepEqual(got, want) {
		t.Error("word sequence not preserved across mixed splits")
	}
}

func TestSplitSentences_Basics(t *testing.T) {
	got := SplitSentences("One here. Two there! Three maybe? Four")
	want := []string{"One here.", "Two there!", "Three maybe?", "Four"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitSentences_NoBoundarySplitOnAbbreviationMidWord(t *testing.T) {
	// A period not followed by whitespace is not a boundary.
	got := SplitSentences("Version 1.2 shipped today. Done.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Version 1.2 shipped today." {
		t.Errorf("unexpected first sentence: %q", got[0])
	}
}

func TestSplitSentences_Empty(t *testing.T) {
	if got := SplitSentences(""); len(got) != 0 {
		t.Errorf("expected no sentences, got %v", got)
	}
	if got := SplitSentences("   "); len(got) != 0 {
		t.Errorf("expected no sentences for whitespace, got %v", got)
	}
}
