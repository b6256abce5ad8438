// Package document defines the text units fed into summarization and the
// sources that produce them.
//
// Information Hiding:
// - Loader mechanics (files, JSON payloads, raw bytes) hidden behind Source
// - Metadata provenance keys applied internally
package document

import (
	"context"
)

// Metadata keys attached by loaders.
const (
	// MetaSource records where a document came from (file path, "json", ...).
	MetaSource = "source"
	// MetaItemIndex records the input item index the document belongs to.
	MetaItemIndex = "itemIndex"
)

// Document is one unit of text with caller-owned metadata.
// The summarization core only reads Content and never mutates Metadata.
type Document struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// New returns a Document with the given content and empty metadata.
func New(content string) Document {
	return Document{Content: content, Metadata: map[string]interface{}{}}
}

// Source supplies the ordered documents derived from one input item.
// Every loader implements this interface explicitly; plain in-memory slices
// are wrapped in SliceSource so consumers never inspect concrete shapes.
type Source interface {
	ProcessItem(ctx context.Context, index int) ([]Document, error)
}

// SliceSource adapts an in-memory document slice to the Source interface.
type SliceSource []Document

// ProcessItem returns a copy of the underlying slice.
func (s SliceSource) ProcessItem(_ context.Context, _ int) ([]Document, error) {
	docs := make([]Document, len(s))
	copy(docs, s)
	return docs, nil
}

var _ Source = (SliceSource)(nil)

// Contents returns the content strings of docs in order.
func Contents(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Content
	}
	return out
}
