// Record types for cached summarization results.
//
// Information Hiding:
// - Storage layer details (memory, SQLite) hidden behind interface
// - Fingerprinting and access tracking handled internally
package storage

import (
	"context"
	"time"
)

// SummaryRecord is one cached summarization result together with the
// settings that produced it and its access statistics.
type SummaryRecord struct {
	Fingerprint   string    `json:"fingerprint"`
	RunID         string    `json:"run_id"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	Strategy      string    `json:"strategy"`
	DocumentCount int       `json:"document_count"`
	Text          string    `json:"text"`
	Valid         bool      `json:"valid"`
	ActualSize    int       `json:"actual_size"`
	MaxSize       int       `json:"max_size"`
	Unit          string    `json:"unit"`
	RetryCount    int       `json:"retry_count"`
	Attempts      int       `json:"attempts"`
	CreatedAt     time.Time `json:"created_at"`
	AccessedAt    time.Time `json:"accessed_at"`
	AccessCount   int       `json:"access_count"`
}

// withDefaults fills zero timestamps and a zero access count so every
// stored record carries complete access statistics.
func (r SummaryRecord) withDefaults(now time.Time) SummaryRecord {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.AccessedAt.IsZero() {
		r.AccessedAt = r.CreatedAt
	}
	if r.AccessCount <= 0 {
		r.AccessCount = 1
	}
	return r
}

// SummaryStore persists summarization results keyed by fingerprint.
type SummaryStore interface {
	// Put saves a record, replacing any record with the same fingerprint.
	Put(ctx context.Context, record SummaryRecord) error

	// Get retrieves a record and updates its access tracking.
	// Returns nil, nil when the fingerprint is unknown.
	Get(ctx context.Context, fingerprint string) (*SummaryRecord, error)

	// List returns records ordered by most recent access.
	// limit <= 0 returns all records.
	List(ctx context.Context, limit int) ([]SummaryRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, fingerprint string) error

	// Purge removes all records.
	Purge(ctx context.Context) error

	// Close releases resources.
	Close() error
}
