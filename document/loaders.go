// Document loaders for files, JSON payloads, and raw binary data.
//
// Information Hiding:
// - Path and size validation hidden per loader
// - JSON field resolution internalized
// - UTF-8 validation internalized

package document

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultMaxFileSize caps how much a FileSource will read (10 MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// FileSource loads one UTF-8 text file as a single document.
type FileSource struct {
	path         string
	maxSizeBytes int64
}

// NewFileSource creates a file loader for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, maxSizeBytes: DefaultMaxFileSize}
}

// WithMaxSize caps the readable file size in bytes.
func (s *FileSource) WithMaxSize(maxBytes int64) *FileSource {
	if maxBytes > 0 {
		s.maxSizeBytes = maxBytes
	}
	return s
}

// ProcessItem reads the file and returns it as one document with
// provenance metadata.
func (s *FileSource) ProcessItem(_ context.Context, index int) ([]Document, error) {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file metadata: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory: %s", s.path)
	}
	if info.Size() > s.maxSizeBytes {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), s.maxSizeBytes)
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("file is not valid UTF-8 text: %s", s.path)
	}

	return []Document{{
		Content: string(content),
		Metadata: map[string]interface{}{
			MetaSource:    s.path,
			MetaItemIndex: index,
		},
	}}, nil
}

var _ Source = (*FileSource)(nil)

// JSONSource extracts documents from a JSON payload.
//
// Pointer is a dot-separated path into the payload ("article.body",
// "sections"). The resolved value must be a string (one document) or an
// array of strings (one document each, in array order). An empty pointer
// resolves the payload root.
type JSONSource struct {
	data    []byte
	pointer string
}

// NewJSONSource creates a JSON loader over raw payload bytes.
func NewJSONSource(data []byte, pointer string) *JSONSource {
	return &JSONSource{data: data, pointer: pointer}
}

// ProcessItem resolves the pointer and returns the extracted documents.
func (s *JSONSource) ProcessItem(_ context.Context, index int) ([]Document, error) {
	var root interface{}
	if err := json.Unmarshal(s.data, &root); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	value, err := resolvePointer(root, s.pointer)
	if err != nil {
		return nil, err
	}

	meta := func() map[string]interface{} {
		return map[string]interface{}{
			MetaSource:    "json",
			MetaItemIndex: index,
		}
	}

	switch v := value.(type) {
	case string:
		return []Document{{Content: v, Metadata: meta()}}, nil
	case []interface{}:
		docs := make([]Document, 0, len(v))
		for i, elem := range v {
			text, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("field %q element %d is not a string", s.pointer, i)
			}
			docs = append(docs, Document{Content: text, Metadata: meta()})
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("field %q is not a string or string array", s.pointer)
	}
}

var _ Source = (*JSONSource)(nil)

// resolvePointer walks a dot-separated path through nested JSON objects.
func resolvePointer(root interface{}, pointer string) (interface{}, error) {
	if strings.TrimSpace(pointer) == "" {
		return root, nil
	}

	current := root
	for _, segment := range strings.Split(pointer, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q not found in JSON payload", pointer)
		}
		next, ok := obj[segment]
		if !ok {
			return nil, fmt.Errorf("field %q not found in JSON payload", pointer)
		}
		current = next
	}
	return current, nil
}

// BinarySource loads raw bytes as a single UTF-8 document.
type BinarySource struct {
	data []byte
	name string
}

// NewBinarySource creates a loader over raw data; name labels provenance
// (a filename, an attachment id).
func NewBinarySource(data []byte, name string) *BinarySource {
	return &BinarySource{data: data, name: name}
}

// ProcessItem validates the bytes as UTF-8 and returns one document.
func (s *BinarySource) ProcessItem(_ context.Context, index int) ([]Document, error) {
	if !utf8.Valid(s.data) {
		return nil, fmt.Errorf("binary data %q is not valid UTF-8 text", s.name)
	}

	name := s.name
	if name == "" {
		name = "binary"
	}

	return []Document{{
		Content: string(s.data),
		Metadata: map[string]interface{}{
			MetaSource:    name,
			MetaItemIndex: index,
		},
	}}, nil
}

var _ Source = (*BinarySource)(nil)
