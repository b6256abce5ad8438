// Cache maintenance commands.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// maxCacheSummaryLen bounds summary previews in cache listings.
const maxCacheSummaryLen = 120

// CacheList prints cached summaries, most recently accessed first.
// limit <= 0 lists everything.
func CacheList(ctx context.Context, limit int, opts Options) error {
	store, err := openSummaryStore(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open summary cache: %w", err)
	}
	defer store.Close()

	records, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	if opts.JSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		fmt.Println("Cache is empty.")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%s  %s/%s  %s  %d document(s)\n",
			record.Fingerprint, record.Provider, record.Model,
			record.Strategy, record.DocumentCount)
		fmt.Printf("    %s\n", truncateString(record.Text, maxCacheSummaryLen))
		fmt.Printf("    created %s, accessed %d time(s)\n",
			record.CreatedAt.Format(time.RFC3339), record.AccessCount)
		fmt.Println()
	}
	return nil
}

// CacheDelete removes one cached summary by fingerprint.
func CacheDelete(ctx context.Context, fingerprint string, opts Options) error {
	store, err := openSummaryStore(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open summary cache: %w", err)
	}
	defer store.Close()

	if err := store.Delete(ctx, fingerprint); err != nil {
		return err
	}
	fmt.Printf("Deleted %s.\n", fingerprint)
	return nil
}

// CacheClear removes all cached summaries.
func CacheClear(ctx context.Context, opts Options) error {
	store, err := openSummaryStore(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open summary cache: %w", err)
	}
	defer store.Close()

	if err := store.Purge(ctx); err != nil {
		return err
	}
	fmt.Println("Cache cleared.")
	return nil
}
