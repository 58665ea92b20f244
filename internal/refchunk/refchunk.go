// Package refchunk reduces supplementary reference text to a bounded string
// for prompt context. Deterministic and pure: no I/O, truncation over
// completeness.
package refchunk

import "strings"

// Options controls chunking bounds.
type Options struct {
	MaxChunkSize int // max characters per chunk
	MaxChunks    int // chunks kept from the front
}

// DefaultOptions returns the standard bounds.
func DefaultOptions() Options {
	return Options{
		MaxChunkSize: 2000,
		MaxChunks:    5,
	}
}

// Join concatenates the input texts, splits them into sentences, greedily
// packs sentences into chunks of at most MaxChunkSize characters, and returns
// the first MaxChunks chunks joined with blank lines. A single sentence
// longer than MaxChunkSize becomes its own oversized chunk; it is never split
// further.
func Join(texts []string, opts Options) string {
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = 2000
	}
	if opts.MaxChunks <= 0 {
		opts.MaxChunks = 5
	}

	content := strings.Join(texts, "\n\n")
	sentences := splitSentences(content)

	var chunks []string
	var current strings.Builder
	for _, sent := range sentences {
		if current.Len() > 0 && current.Len()+len(sent)+1 > opts.MaxChunkSize {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	if len(chunks) > opts.MaxChunks {
		chunks = chunks[:opts.MaxChunks]
	}
	return strings.Join(chunks, "\n\n")
}

// splitSentences splits on runs of sentence-terminal punctuation.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	terminal := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			current.WriteRune(r)
			terminal = true
		default:
			if terminal {
				flush()
				terminal = false
			}
			current.WriteRune(r)
		}
	}
	flush()

	return sentences
}
