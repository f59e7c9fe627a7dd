// Package chunking splits arbitrary-length text into bounded-size
// overlapping segments for embedding.
package chunking

import "fmt"

// Default chunking parameters, applied globally (not per call).
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// Splitter produces fixed-size overlapping chunks measured in runes.
// Consecutive chunks share the trailing overlap runes of their predecessor,
// so chunk i starts at rune offset i*(size-overlap).
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter creates a Splitter. Overlap must be smaller than size.
func NewSplitter(size, overlap int) (Splitter, error) {
	if size <= 0 {
		return Splitter{}, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return Splitter{}, fmt.Errorf("chunk overlap (%d) must be in [0, size), size %d", overlap, size)
	}
	return Splitter{size: size, overlap: overlap}, nil
}

// DefaultSplitter returns a Splitter with the default parameters.
func DefaultSplitter() Splitter {
	s, err := NewSplitter(DefaultChunkSize, DefaultChunkOverlap)
	if err != nil {
		panic(err) // defaults are statically valid
	}
	return s
}

// Size returns the configured chunk size in runes.
func (s Splitter) Size() int { return s.size }

// Overlap returns the configured overlap in runes.
func (s Splitter) Overlap() int { return s.overlap }

// Split returns the chunks of text. Text no longer than the chunk size
// yields exactly one chunk; empty text yields none. Longer text yields
// 1 + ceil((len-size)/(size-overlap)) chunks, the last of which may be
// shorter than size but always longer than overlap.
func (s Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= s.size {
		return []string{text}
	}

	step := s.size - s.overlap
	chunks := make([]string, 0, 1+(len(runes)-s.size+step-1)/step)
	for start := 0; ; start += step {
		end := start + s.size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// Count returns how many chunks Split would produce for a text of the
// given rune length.
func (s Splitter) Count(length int) int {
	if length == 0 {
		return 0
	}
	if length <= s.size {
		return 1
	}
	step := s.size - s.overlap
	return 1 + (length-s.size+step-1)/step
}
