// Package storage caches summarization results in SQLite.
//
// Information Hiding:
// - SQLite connection management hidden behind interface
// - Schema and migration details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore implements SummaryStore using a SQLite database file.
// Thread-safe: sql.DB handles connection pooling and concurrent access.
type SqliteStore struct {
	db *sql.DB
}

// OpenSqlite opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func OpenSqlite(path string) (*SqliteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// NewSqliteInMemory creates an in-memory database (useful for testing).
func NewSqliteInMemory() (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS summaries (
			fingerprint TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			strategy TEXT NOT NULL,
			document_count INTEGER NOT NULL,
			text TEXT NOT NULL,
			valid INTEGER NOT NULL,
			actual_size INTEGER NOT NULL,
			max_size INTEGER NOT NULL,
			unit TEXT NOT NULL,
			retry_count INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			accessed_at INTEGER NOT NULL,
			access_count INTEGER DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_summaries_accessed
		ON summaries(accessed_at DESC);

		CREATE INDEX IF NOT EXISTS idx_summaries_provider
		ON summaries(provider, model);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Put saves a record, replacing any record with the same fingerprint.
// Zero timestamps and a zero access count get defaults applied.
func (s *SqliteStore) Put(ctx context.Context, record SummaryRecord) error {
	if record.Fingerprint == "" {
		return fmt.Errorf("record fingerprint is empty")
	}
	record = record.withDefaults(time.Now())

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO summaries
		(fingerprint, run_id, provider, model, strategy, document_count, text,
		 valid, actual_size, max_size, unit, retry_count, attempts,
		 created_at, accessed_at, access_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Fingerprint,
		record.RunID,
		record.Provider,
		record.Model,
		record.Strategy,
		record.DocumentCount,
		record.Text,
		record.Valid,
		record.ActualSize,
		record.MaxSize,
		record.Unit,
		record.RetryCount,
		record.Attempts,
		record.CreatedAt.Unix(),
		record.AccessedAt.Unix(),
		record.AccessCount,
	)
	if err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}
	return nil
}

// Get retrieves a record and updates its access tracking.
// Returns nil, nil if the fingerprint is unknown.
func (s *SqliteStore) Get(ctx context.Context, fingerprint string) (*SummaryRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT fingerprint, run_id, provider, model, strategy, document_count, text,
		       valid, actual_size, max_size, unit, retry_count, attempts,
		       created_at, accessed_at, access_count
		FROM summaries WHERE fingerprint = ?`,
		fingerprint)

	record, err := scanSummaryRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	now := time.Now()
	_, updateErr := s.db.ExecContext(ctx,
		"UPDATE summaries SET accessed_at = ?, access_count = access_count + 1 WHERE fingerprint = ?",
		now.Unix(), fingerprint)
	if updateErr != nil {
		// Access tracking failed - return error since state would be inconsistent
		return nil, fmt.Errorf("failed to update access tracking: %w", updateErr)
	}

	// Update the record with new access info (only after successful DB update)
	record.AccessedAt = now
	record.AccessCount++

	return &record, nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummaryRow(row rowScanner) (SummaryRecord, error) {
	var record SummaryRecord
	var createdAt, accessedAt int64

	err := row.Scan(
		&record.Fingerprint,
		&record.RunID,
		&record.Provider,
		&record.Model,
		&record.Strategy,
		&record.DocumentCount,
		&record.Text,
		&record.Valid,
		&record.ActualSize,
		&record.MaxSize,
		&record.Unit,
		&record.RetryCount,
		&record.Attempts,
		&createdAt,
		&accessedAt,
		&record.AccessCount,
	)
	if err != nil {
		return SummaryRecord{}, err
	}

	record.CreatedAt = time.Unix(createdAt, 0)
	record.AccessedAt = time.Unix(accessedAt, 0)
	return record, nil
}

// List returns records ordered by most recent access.
// limit <= 0 returns all records.
func (s *SqliteStore) List(ctx context.Context, limit int) ([]SummaryRecord, error) {
	query := `
		SELECT fingerprint, run_id, provider, model, strategy, document_count, text,
		       valid, actual_size, max_size, unit, retry_count, attempts,
		       created_at, accessed_at, access_count
		FROM summaries
		ORDER BY accessed_at DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	records := []SummaryRecord{} // Start with empty slice, not nil
	for rows.Next() {
		record, err := scanSummaryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summaries: %w", err)
	}

	return records, nil
}

// Delete removes a record.
func (s *SqliteStore) Delete(ctx context.Context, fingerprint string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM summaries WHERE fingerprint = ?", fingerprint)
	if err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return nil
}

// Purge removes all records.
func (s *SqliteStore) Purge(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM summaries")
	if err != nil {
		return fmt.Errorf("failed to purge summaries: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *SqliteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM summaries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	return count, nil
}

// Verify SqliteStore implements the store interface
var _ SummaryStore = (*SqliteStore)(nil)
