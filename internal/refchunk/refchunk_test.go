package refchunk

import (
	"strings"
	"testing"
)

func TestJoin_ShortTextPassesThrough(t *testing.T) {
	got := Join([]string{"Photosynthesis converts light to energy.", "Plants use chlorophyll."}, DefaultOptions())
	if !strings.Contains(got, "Photosynthesis") || !strings.Contains(got, "chlorophyll") {
		t.Errorf("short input should survive intact, got %q", got)
	}
}

func TestJoin_RespectsChunkSize(t *testing.T) {
	var sentences []string
	for i := 0; i < 50; i++ {
		sentences = append(sentences, "This sentence pads the reference text with filler words.")
	}
	opts := Options{MaxChunkSize: 120, MaxChunks: 3}
	got := Join([]string{strings.Join(sentences, " ")}, opts)

	chunks := strings.Split(got, "\n\n")
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > opts.MaxChunkSize {
			t.Errorf("chunk %d exceeds max size: %d chars", i, len(c))
		}
	}
}

func TestJoin_OversizedSentenceKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 300) + "."
	opts := Options{MaxChunkSize: 100, MaxChunks: 5}
	got := Join([]string{long}, opts)
	if got != long {
		t.Errorf("oversized sentence should be a single unsplit chunk")
	}
}

func TestJoin_CapsChunkCount(t *testing.T) {
	var texts []string
	for i := 0; i < 20; i++ {
		texts = append(texts, strings.Repeat("word ", 30)+"end.")
	}
	opts := Options{MaxChunkSize: 100, MaxChunks: 2}
	got := Join(texts, opts)
	if n := len(strings.Split(got, "\n\n")); n != 2 {
		t.Errorf("expected 2 chunks, got %d", n)
	}
}

func TestJoin_EmptyInput(t *testing.T) {
	if got := Join(nil, DefaultOptions()); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
