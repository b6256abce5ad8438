// Character-based text splitting applied upstream of summarization.

package document

import (
	"strings"
)

const (
	// DefaultChunkSize is the default maximum chunk length in characters.
	DefaultChunkSize = 4000
	// DefaultChunkOverlap is the default overlap between adjacent chunks.
	DefaultChunkOverlap = 200
)

// Splitter cuts documents into overlapping character chunks, preferring to
// break on paragraph, then line, then word boundaries.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

// NewSplitter creates a splitter. chunkSize < 1 falls back to the default;
// overlap is clamped to [0, chunkSize-1].
func NewSplitter(chunkSize, chunkOverlap int) Splitter {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize - 1
	}
	return Splitter{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// SplitDocuments splits each document into chunks, preserving document
// order. Documents that fit in one chunk pass through unchanged. Chunked
// documents get copied metadata plus "chunk" (1-based) and "chunkCount".
func (s Splitter) SplitDocuments(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		chunks := s.splitText(doc.Content)
		if len(chunks) <= 1 {
			out = append(out, doc)
			continue
		}
		for i, chunk := range chunks {
			meta := make(map[string]interface{}, len(doc.Metadata)+2)
			for k, v := range doc.Metadata {
				meta[k] = v
			}
			meta["chunk"] = i + 1
			meta["chunkCount"] = len(chunks)
			out = append(out, Document{Content: chunk, Metadata: meta})
		}
	}
	return out
}

// splitText cuts text into chunks of at most chunkSize characters.
func (s Splitter) splitText(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunk := strings.TrimSpace(string(runes[start:]))
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := breakPoint(runes, start, end)
		chunk := strings.TrimSpace(string(runes[start:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - s.chunkOverlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// breakPoint picks a cut position in (start, end], preferring a paragraph
// break, then a line break, then a space, scanning backward through the
// second half of the window. Falls back to the hard limit.
func breakPoint(runes []rune, start, end int) int {
	half := start + (end-start)/2

	for i := end; i > half; i-- {
		if runes[i-1] == '\n' && i-2 >= start && runes[i-2] == '\n' {
			return i
		}
	}
	for i := end; i > half; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := end; i > half; i-- {
		if runes[i-1] == ' ' {
			return i
		}
	}
	return end
}
