package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestSelectChunkSize_Thresholds(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		totalChars int
		want       int
	}{
		{0, 15000},
		{10000, 15000},
		{19999, 15000},
		{20000, 12000},
		{49999, 12000},
		{50000, 8000},
		{60000, 8000},
	}
	for _, c := range cases {
		if got := cfg.SelectChunkSize(c.totalChars); got != c.want {
			t.Errorf("SelectChunkSize(%d): expected %d, got %d", c.totalChars, c.want, got)
		}
	}
}

func TestSelectChunkSize_UnorderedThresholds(t *testing.T) {
	// Threshold order in the config must not matter.
	cfg := Config{
		DefaultChunkSize: 15000,
		Thresholds: []Threshold{
			{MinChars: 50000, ChunkSize: 8000},
			{MinChars: 20000, ChunkSize: 12000},
		},
	}
	if got := cfg.SelectChunkSize(60000); got != 8000 {
		t.Errorf("expected 8000 for 60k chars, got %d", got)
	}
	if got := cfg.SelectChunkSize(30000); got != 12000 {
		t.Errorf("expected 12000 for 30k chars, got %d", got)
	}
}

func TestChunks_LosslessReconstruction(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("The quick brown fox jumps over the lazy dog. ")
		if i%20 == 19 {
			sb.WriteString("\n\n")
		}
	}
	text := sb.String()

	cfg := Config{DefaultChunkSize: 500}
	chunks, err := SplitAll(text, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Error("concatenated chunks do not reproduce the input")
	}
}

func TestChunks_RespectSizeLimit(t *testing.T) {
	text := strings.Repeat("One sentence here. Another one follows! A question? ", 200)

	cfg := Config{DefaultChunkSize: 300}
	chunks, err := SplitAll(text, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > 300 {
			t.Errorf("chunk %d: %d runes exceeds limit 300", i, n)
		}
	}
}

func TestChunks_PrefersParagraphBoundary(t *testing.T) {
	// A paragraph break sits just under the limit; the cut should land
	// right after it, not mid-sentence.
	para := strings.Repeat("word ", 18) // 90 chars
	text := para + "\n\n" + para + "\n\n" + para

	cfg := Config{DefaultChunkSize: 100}
	chunks, err := SplitAll(text, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Errorf("expected first chunk to end at paragraph break, got %q", chunks[0][len(chunks[0])-10:])
	}
}

func TestChunks_SentenceBoundaryFallback(t *testing.T) {
	// No paragraph breaks at all; sentence punctuation should decide cuts.
	text := strings.Repeat("Short sentence here. ", 50)

	cfg := Config{DefaultChunkSize: 120}
	chunks, err := SplitAll(text, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		trimmed := strings.TrimRight(chunk, " ")
		if !strings.HasSuffix(trimmed, ".") {
			t.Errorf("chunk %d: expected sentence-boundary cut, got trailing %q", i, trimmed[len(trimmed)-10:])
		}
	}
}

func TestChunks_HardSplitWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("x", 1000)

	cfg := Config{DefaultChunkSize: 256}
	chunks, err := SplitAll(text, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 4 // ceil(1000/256)
	if len(chunks) != want {
		t.Fatalf("expected %d chunks, got %d", want, len(chunks))
	}
	for i, chunk := range chunks[:3] {
		if len(chunk) != 256 {
			t.Errorf("chunk %d: expected hard split at 256, got %d", i, len(chunk))
		}
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Error("hard splits lost content")
	}
}

func TestChunks_ShortInputSingleChunk(t *testing.T) {
	// 10k chars selects the default 15000 size: one chunk.
	text := strings.Repeat("a", 10000)
	chunks, err := SplitAll(text, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Error("single chunk should equal the input")
	}
}

func TestChunks_VeryLongInputUsesSmallChunks(t *testing.T) {
	text := strings.Repeat("Sentence number one. ", 3000) // 63k chars
	chunks, err := SplitAll(text, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > 8000 {
			t.Errorf("chunk %d: %d runes exceeds the 8000 size selected for very long input", i, n)
		}
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Error("concatenated chunks do not reproduce the input")
	}
}

func TestChunks_EmptyInput(t *testing.T) {
	chunks, err := SplitAll("", DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty input, got %d", len(chunks))
	}
}

func TestChunks_InvalidConfig(t *testing.T) {
	_, err := Chunks("some text", Config{DefaultChunkSize: 0})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	_, err = Chunks("some text", Config{
		DefaultChunkSize: 100,
		Thresholds:       []Threshold{{MinChars: 50, ChunkSize: -1}},
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for negative threshold size, got %v", err)
	}
}

func TestChunks_Restartable(t *testing.T) {
	text := strings.Repeat("A sentence for testing restartability. ", 30)
	seq, err := Chunks(text, Config{DefaultChunkSize: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var first, second []string
	for c := range seq {
		first = append(first, c)
	}
	for c := range seq {
		second = append(second, c)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical runs, got %d and %d chunks", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunks_MultibyteRunesSurviveHardSplit(t *testing.T) {
	text := strings.Repeat("玉ねぎを炒めてからスープに加えます", 50)
	chunks, err := SplitAll(text, Config{DefaultChunkSize: 64})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Error("multibyte text corrupted by splitting")
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > 64 {
			t.Errorf("chunk %d: %d runes exceeds limit", i, n)
		}
	}
}
