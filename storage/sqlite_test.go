package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func sampleRecord(fingerprint string) SummaryRecord {
	created := time.Now().Add(-time.Hour).Truncate(time.Second)
	return SummaryRecord{
		Fingerprint:   fingerprint,
		RunID:         "run-42",
		Provider:      "openai",
		Model:         "gpt-4o-mini",
		Strategy:      "map_reduce",
		DocumentCount: 3,
		Text:          "A short summary.",
		Valid:         true,
		ActualSize:    16,
		MaxSize:       100,
		Unit:          "characters",
		RetryCount:    0,
		Attempts:      0,
		CreatedAt:     created,
		AccessedAt:    created,
		AccessCount:   1,
	}
}

func TestSqliteStorePutAndGet(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	record := sampleRecord("fp-1")

	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	loaded, err := store.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected record, got nil")
	}

	if loaded.RunID != "run-42" {
		t.Errorf("expected run_id 'run-42', got %q", loaded.RunID)
	}
	if loaded.Provider != "openai" {
		t.Errorf("expected provider 'openai', got %q", loaded.Provider)
	}
	if loaded.Model != "gpt-4o-mini" {
		t.Errorf("expected model 'gpt-4o-mini', got %q", loaded.Model)
	}
	if loaded.Strategy != "map_reduce" {
		t.Errorf("expected strategy 'map_reduce', got %q", loaded.Strategy)
	}
	if loaded.DocumentCount != 3 {
		t.Errorf("expected document_count 3, got %d", loaded.DocumentCount)
	}
	if loaded.Text != "A short summary." {
		t.Errorf("expected summary text, got %q", loaded.Text)
	}
	if !loaded.Valid {
		t.Error("expected valid record")
	}
	if loaded.ActualSize != 16 {
		t.Errorf("expected actual_size 16, got %d", loaded.ActualSize)
	}
	if loaded.MaxSize != 100 {
		t.Errorf("expected max_size 100, got %d", loaded.MaxSize)
	}
	if loaded.Unit != "characters" {
		t.Errorf("expected unit 'characters', got %q", loaded.Unit)
	}
	if !loaded.CreatedAt.Equal(record.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", record.CreatedAt, loaded.CreatedAt)
	}
	if loaded.AccessCount != 2 { // Initial 1 + our access
		t.Errorf("expected access_count 2, got %d", loaded.AccessCount)
	}
	if loaded.AccessedAt.Before(record.AccessedAt) {
		t.Errorf("expected accessed_at bumped past %v, got %v", record.AccessedAt, loaded.AccessedAt)
	}
}

func TestSqliteStoreGetUnknownFingerprint(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	record, err := store.Get(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil for unknown fingerprint, got %+v", record)
	}
}

func TestSqliteStoreGetUpdatesAccess(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.Put(ctx, sampleRecord("fp-1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	record, err := store.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.AccessCount != 2 {
		t.Errorf("expected access_count 2, got %d", record.AccessCount)
	}

	// Access again
	record, err = store.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.AccessCount != 3 {
		t.Errorf("expected access_count 3, got %d", record.AccessCount)
	}
}

func TestSqliteStorePutOverwrites(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	first := sampleRecord("fp-1")
	first.Text = "First summary"
	second := sampleRecord("fp-1")
	second.Text = "Second summary"

	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	loaded, err := store.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded.Text != "Second summary" {
		t.Errorf("expected 'Second summary', got %q", loaded.Text)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 record after overwrite, got %d", count)
	}
}

func TestSqliteStorePutEmptyFingerprint(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	record := sampleRecord("")
	if err := store.Put(context.Background(), record); err == nil {
		t.Error("expected error for empty fingerprint")
	}
}

func TestSqliteStorePutAppliesDefaults(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	record := SummaryRecord{
		Fingerprint: "fp-1",
		Text:        "Summary",
	}
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	loaded, err := store.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded.CreatedAt.IsZero() {
		t.Error("expected created_at to be defaulted")
	}
	if loaded.AccessCount != 2 { // Defaulted to 1, then our access
		t.Errorf("expected access_count 2, got %d", loaded.AccessCount)
	}
}

func TestSqliteStoreListOrdersByAccess(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Now().Truncate(time.Second)

	oldest := sampleRecord("fp-old")
	oldest.AccessedAt = base.Add(-2 * time.Hour)
	middle := sampleRecord("fp-mid")
	middle.AccessedAt = base.Add(-1 * time.Hour)
	newest := sampleRecord("fp-new")
	newest.AccessedAt = base

	for _, record := range []SummaryRecord{oldest, newest, middle} {
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	want := []string{"fp-new", "fp-mid", "fp-old"}
	for i, fingerprint := range want {
		if records[i].Fingerprint != fingerprint {
			t.Errorf("position %d: expected %q, got %q", i, fingerprint, records[i].Fingerprint)
		}
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 records with limit, got %d", len(limited))
	}
}

func TestSqliteStoreListEmpty(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if records == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(records) != 0 {
		t.Errorf("expected 0 records, got %d", len(records))
	}
}

func TestSqliteStoreDelete(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.Put(ctx, sampleRecord("fp-1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := store.Delete(ctx, "fp-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	record, err := store.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record != nil {
		t.Error("expected record to be deleted")
	}

	// Deleting an unknown fingerprint is not an error
	if err := store.Delete(ctx, "nonexistent"); err != nil {
		t.Errorf("Delete of unknown fingerprint failed: %v", err)
	}
}

func TestSqliteStorePurge(t *testing.T) {
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.Put(ctx, sampleRecord("fp-1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, sampleRecord("fp-2")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := store.Purge(ctx); err != nil {
		t.Fatalf("Purge failed: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 records after purge, got %d", count)
	}
}

func TestOpenSqliteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")

	store, err := OpenSqlite(path)
	if err != nil {
		t.Fatalf("OpenSqlite failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.Put(ctx, sampleRecord("fp-1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	record, err := store.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record == nil {
		t.Fatal("expected record, got nil")
	}
}
