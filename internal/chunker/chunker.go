// Package chunker splits transcripts into bounded-size chunks for the
// notes generator. Splitting is lossless: concatenating the chunks in
// order reproduces the input exactly.
package chunker

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidConfig reports a non-positive chunk size in the configuration.
var ErrInvalidConfig = errors.New("invalid chunker configuration")

// Threshold pairs a minimum transcript length with the chunk size used once
// the transcript reaches it. Longer transcripts get smaller chunks so the
// generator sees more, shorter requests.
type Threshold struct {
	MinChars  int
	ChunkSize int
}

// Config controls transcript splitting.
type Config struct {
	DefaultChunkSize int // Chunk size for transcripts below every threshold.
	Thresholds       []Threshold
}

// DefaultConfig returns the standard sizing: 15000-char chunks, dropping to
// 12000 at 20k chars of input and 8000 at 50k.
func DefaultConfig() Config {
	return Config{
		DefaultChunkSize: 15000,
		Thresholds: []Threshold{
			{MinChars: 20000, ChunkSize: 12000},
			{MinChars: 50000, ChunkSize: 8000},
		},
	}
}

// Validate checks every configured chunk size is positive.
func (c Config) Validate() error {
	if c.DefaultChunkSize <= 0 {
		return fmt.Errorf("%w: default chunk size %d", ErrInvalidConfig, c.DefaultChunkSize)
	}
	for _, t := range c.Thresholds {
		if t.ChunkSize <= 0 {
			return fmt.Errorf("%w: chunk size %d at threshold %d", ErrInvalidConfig, t.ChunkSize, t.MinChars)
		}
	}
	return nil
}

// SelectChunkSize returns the chunk size for a transcript of totalChars
// runes: the size paired with the largest threshold boundary the length
// meets or exceeds, or the default size for shorter inputs.
func (c Config) SelectChunkSize(totalChars int) int {
	size := c.DefaultChunkSize
	best := -1
	for _, t := range c.Thresholds {
		if totalChars >= t.MinChars && t.MinChars > best {
			best = t.MinChars
			size = t.ChunkSize
		}
	}
	return size
}

// Chunks returns a lazy sequence of chunks for text. The sequence is finite
// and can be ranged over more than once. Every chunk is at most the selected
// chunk size in runes; chunk boundaries prefer paragraph breaks, then
// sentence-ending punctuation, within a lookback window below the limit,
// falling back to a hard split at the limit. Empty input yields no chunks.
func Chunks(text string, cfg Config) (iter.Seq[string], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runes := []rune(text)
	size := cfg.SelectChunkSize(len(runes))

	return func(yield func(string) bool) {
		for start := 0; start < len(runes); {
			end := cutPoint(runes, start, size)
			if !yield(string(runes[start:end])) {
				return
			}
			start = end
		}
	}, nil
}

// SplitAll collects the chunk sequence into a slice.
func SplitAll(text string, cfg Config) ([]string, error) {
	seq, err := Chunks(text, cfg)
	if err != nil {
		return nil, err
	}
	var chunks []string
	for chunk := range seq {
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// cutPoint returns the end index (exclusive) of the chunk starting at start,
// given a budget of size runes.
func cutPoint(runes []rune, start, size int) int {
	limit := start + size
	if limit >= len(runes) {
		return len(runes)
	}

	// Only boundaries close to the limit are worth taking; a split far
	// below it would waste most of the chunk budget.
	lookback := size / 4
	if lookback < 1 {
		lookback = 1
	}
	floor := limit - lookback
	if floor < start+1 {
		floor = start + 1
	}

	// Paragraph breaks first, scanning back from the limit.
	for i := limit - 2; i >= floor; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			return i + 2
		}
	}

	// Then sentence-ending punctuation followed by whitespace.
	for i := limit - 2; i >= floor; i-- {
		if isSentenceEnd(runes[i]) && isSpace(runes[i+1]) {
			return i + 2
		}
	}

	// No boundary in the window: hard split at the limit.
	return limit
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
