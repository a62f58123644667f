package notes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLimit reports a non-positive word limit.
var ErrInvalidLimit = errors.New("word limit must be positive")

// WordLimitError reports a section that still exceeds the limit after
// splitting. Seeing one means the splitter itself is broken, so it is
// surfaced instead of emitting non-compliant output.
type WordLimitError struct {
	Title string
	Words int
	Limit int
}

func (e *WordLimitError) Error() string {
	return fmt.Sprintf("section %q has %d words after splitting (limit %d)", e.Title, e.Words, e.Limit)
}

// EnforceWordLimit returns a new document in which every section body has
// at most maxWords words. Sections already within the limit are kept
// unchanged. Oversized sections are split at sentence boundaries, packing
// as many whole sentences as fit under the limit into each piece; a single
// sentence longer than the limit is cut at the word boundary. The first
// piece keeps the original title; piece i is titled "<title> (cont. i+1)".
// The input document is never mutated.
func EnforceWordLimit(doc Document, maxWords int) (Document, error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, maxWords)
	}

	out := make(Document, 0, len(doc))
	for _, sec := range doc {
		if sec.Words() <= maxWords {
			out = append(out, sec)
			continue
		}

		pieces := splitByWordLimit(sec.Body, maxWords)
		for i, piece := range pieces {
			title := sec.Title
			if i > 0 {
				title = fmt.Sprintf("%s (cont. %d)", sec.Title, i+1)
			}
			emitted := Section{Title: title, Body: piece}
			if n := emitted.Words(); n > maxWords {
				return nil, &WordLimitError{Title: title, Words: n, Limit: maxWords}
			}
			out = append(out, emitted)
		}
	}
	return out, nil
}

// splitByWordLimit splits text into pieces of at most maxWords words each,
// preferring sentence boundaries. Packing is greedy: each piece takes as
// many whole sentences as fit under the limit before the next piece starts.
func splitByWordLimit(text string, maxWords int) []string {
	var pieces []string
	var current []string
	count := 0

	for _, sentence := range SplitSentences(text) {
		words := strings.Fields(sentence)
		if len(words) == 0 {
			continue
		}

		if count+len(words) <= maxWords {
			current = append(current, sentence)
			count += len(words)
			continue
		}

		if count > 0 {
			pieces = append(pieces, strings.Join(current, " "))
			current = nil
			count = 0
		}

		// A sentence that alone exceeds the limit is cut at word
		// boundaries; the tail seeds the next piece.
		for len(words) > maxWords {
			pieces = append(pieces, strings.Join(words[:maxWords], " "))
			words = words[maxWords:]
		}
		if len(words) > 0 {
			current = []string{strings.Join(words, " ")}
			count = len(words)
		}
	}

	if count > 0 {
		pieces = append(pieces, strings.Join(current, " "))
	}
	return pieces
}

// SplitSentences splits text at sentence-ending punctuation followed by
// whitespace. Trailing punctuation stays with its sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if isTerminator(r) && i+1 < len(runes) && isWhitespace(runes[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
