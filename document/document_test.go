package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSliceSourceReturnsCopy(t *testing.T) {
	src := SliceSource{New("one"), New("two")}

	docs, err := src.ProcessItem(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	docs[0].Content = "mutated"
	if src[0].Content != "one" {
		t.Error("mutating the result changed the source slice")
	}
}

func TestContents(t *testing.T) {
	docs := []Document{New("a"), New("b"), New("c")}
	got := Contents(docs)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Contents[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("file body"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	docs, err := NewFileSource(path).ProcessItem(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Content != "file body" {
		t.Errorf("content = %q", docs[0].Content)
	}
	if docs[0].Metadata[MetaSource] != path {
		t.Errorf("source metadata = %v, want %s", docs[0].Metadata[MetaSource], path)
	}
	if docs[0].Metadata[MetaItemIndex] != 3 {
		t.Errorf("itemIndex metadata = %v, want 3", docs[0].Metadata[MetaItemIndex])
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.txt")).ProcessItem(context.Background(), 0)
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileSourceTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := NewFileSource(path).WithMaxSize(4).ProcessItem(context.Background(), 0)
	if err == nil {
		t.Error("expected error for oversized file")
	}
}

func TestJSONSourceStringField(t *testing.T) {
	payload := []byte(`{"article": {"body": "the text"}}`)

	docs, err := NewJSONSource(payload, "article.body").ProcessItem(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].Content != "the text" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
}

func TestJSONSourceStringArray(t *testing.T) {
	payload := []byte(`{"sections": ["first", "second", "third"]}`)

	docs, err := NewJSONSource(payload, "sections").ProcessItem(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if docs[1].Content != "second" {
		t.Errorf("docs[1] = %q", docs[1].Content)
	}
}

func TestJSONSourceMissingField(t *testing.T) {
	payload := []byte(`{"a": 1}`)

	_, err := NewJSONSource(payload, "missing.path").ProcessItem(context.Background(), 0)
	if err == nil {
		t.Error("expected error for missing field")
	}
}

func TestJSONSourceNonStringField(t *testing.T) {
	payload := []byte(`{"n": 42}`)

	_, err := NewJSONSource(payload, "n").ProcessItem(context.Background(), 0)
	if err == nil {
		t.Error("expected error for non-string field")
	}
}

func TestJSONSourceInvalidPayload(t *testing.T) {
	_, err := NewJSONSource([]byte(`{not json`), "x").ProcessItem(context.Background(), 0)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestBinarySource(t *testing.T) {
	docs, err := NewBinarySource([]byte("raw text"), "upload.txt").ProcessItem(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].Content != "raw text" {
		t.Errorf("content = %q", docs[0].Content)
	}
	if docs[0].Metadata[MetaSource] != "upload.txt" {
		t.Errorf("source = %v", docs[0].Metadata[MetaSource])
	}
}

func TestBinarySourceInvalidUTF8(t *testing.T) {
	_, err := NewBinarySource([]byte{0xff, 0xfe, 0x01}, "blob").ProcessItem(context.Background(), 0)
	if err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}
