// Command execution for CLI commands.
//
// Information Hiding:
// - Provider and chain setup hidden
// - Cache consultation and fingerprinting hidden
// - Output formatting hidden

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/richinex/procrustes/config"
	"github.com/richinex/procrustes/document"
	"github.com/richinex/procrustes/llm"
	"github.com/richinex/procrustes/size"
	"github.com/richinex/procrustes/storage"
	"github.com/richinex/procrustes/summarize"
)

// Options holds CLI execution options.
type Options struct {
	Provider string
	Verbose  bool
	JSON     bool
	NoCache  bool
	DBPath   string
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		DBPath: defaultDBPath,
	}
}

// SummarizeRequest describes one summarization run.
type SummarizeRequest struct {
	Paths        []string // files, directories or globs; empty reads stdin
	Strategy     string
	BatchSize    int
	BatchDelay   time.Duration
	MaxSize      int
	SizeUnit     string
	AgentAssist  bool
	Split        bool
	ChunkSize    int
	ChunkOverlap int
}

// Summarize loads the requested documents, consults the summary cache and
// runs the configured chain, printing the result to stdout.
func Summarize(ctx context.Context, req SummarizeRequest, opts Options) error {
	strategy, err := summarize.ParseStrategyType(req.Strategy)
	if err != nil {
		return err
	}
	unit, err := size.ParseUnit(req.SizeUnit)
	if err != nil {
		return err
	}

	provider, err := createProvider(opts.Provider)
	if err != nil {
		return err
	}
	settings, err := config.New(opts.Provider)
	if err != nil {
		return err
	}

	docs, err := loadDocuments(ctx, req)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents to summarize")
	}

	if opts.Verbose {
		fmt.Printf("Summarizing %d document(s) with %s via %s/%s...\n",
			len(docs), strategy, settings.LLM.Provider, settings.LLM.Model)
	}

	chain := summarize.NewBuilder(provider).
		Strategy(strategy).
		BatchSize(req.BatchSize).
		BatchDelay(req.BatchDelay).
		MaxOutputSize(req.MaxSize).
		SizeUnit(unit).
		AgentAssist(req.AgentAssist).
		Build()

	var store storage.SummaryStore
	var fingerprint string
	if !opts.NoCache {
		s, err := openSummaryStore(opts.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache disabled, failed to open database: %v\n", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	if store != nil {
		fingerprint = storage.Fingerprint(document.Contents(docs), chain.Config(),
			settings.LLM.Provider, settings.LLM.Model)

		record, err := store.Get(ctx, fingerprint)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache lookup failed: %v\n", err)
		} else if record != nil {
			if opts.Verbose {
				fmt.Printf("Cache hit %s (stored %s)\n",
					fingerprint, record.CreatedAt.Format(time.RFC3339))
			}
			return printResult(recordResult(record), opts)
		}
	}

	callOpts := llm.NewCallOptions()
	result, err := chain.WithCallOptions(callOpts).Summarize(ctx, docs)
	if err != nil {
		return err
	}

	if store != nil {
		record := storage.SummaryRecord{
			Fingerprint:   fingerprint,
			RunID:         callOpts.RunID,
			Provider:      settings.LLM.Provider,
			Model:         settings.LLM.Model,
			Strategy:      strategy.String(),
			DocumentCount: len(docs),
			Text:          result.Text,
			Valid:         result.Size.Valid,
			ActualSize:    result.Size.ActualSize,
			MaxSize:       result.Size.MaxSize,
			Unit:          result.Size.Unit,
			RetryCount:    result.Size.RetryCount,
			Attempts:      result.Size.Attempts,
		}
		if err := store.Put(ctx, record); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache summary: %v\n", err)
		}
	}

	return printResult(result, opts)
}

// loadDocuments resolves the request inputs to an ordered document list.
// With no paths the whole of stdin becomes a single document.
func loadDocuments(ctx context.Context, req SummarizeRequest) ([]document.Document, error) {
	var docs []document.Document

	if len(req.Paths) == 0 {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text := strings.TrimSpace(string(content))
		if text != "" {
			doc := document.New(text)
			doc.Metadata[document.MetaSource] = "stdin"
			docs = append(docs, doc)
		}
	} else {
		files, err := document.ExpandPaths(req.Paths)
		if err != nil {
			return nil, err
		}
		for i, file := range files {
			loaded, err := document.NewFileSource(file).ProcessItem(ctx, i)
			if err != nil {
				return nil, err
			}
			docs = append(docs, loaded...)
		}
	}

	if req.Split {
		docs = document.NewSplitter(req.ChunkSize, req.ChunkOverlap).SplitDocuments(docs)
	}
	return docs, nil
}

// recordResult rebuilds a chain result from a cached record. The original
// warning text is not stored, so invalid cached results carry none.
func recordResult(record *storage.SummaryRecord) summarize.Result {
	return summarize.Result{
		Text: record.Text,
		Size: summarize.SizeValidation{
			Valid:      record.Valid,
			ActualSize: record.ActualSize,
			MaxSize:    record.MaxSize,
			Unit:       record.Unit,
			RetryCount: record.RetryCount,
			Attempts:   record.Attempts,
		},
	}
}

// printResult writes the summary to stdout, as JSON when requested.
func printResult(result summarize.Result, opts Options) error {
	if opts.JSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(result.Text)

	if !result.Size.Valid {
		warning := result.Size.Warning
		if warning == "" {
			warning = fmt.Sprintf("summary is %d %s, exceeding the limit of %d",
				result.Size.ActualSize, result.Size.Unit, result.Size.MaxSize)
		}
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	if opts.Verbose {
		fmt.Printf("\n(%d %s", result.Size.ActualSize, result.Size.Unit)
		if result.Size.MaxSize > 0 {
			fmt.Printf(" / limit %d", result.Size.MaxSize)
		}
		if result.Size.Attempts > 0 {
			fmt.Printf(", %d regeneration(s)", result.Size.Attempts)
		}
		fmt.Println(")")
	}
	return nil
}

// Helper functions

// defaultDBPath is the default summary cache location.
const defaultDBPath = ".procrustes/summaries.db"

// openSummaryStore opens the SQLite summary cache fronted by the
// in-memory layer.
func openSummaryStore(dbPath string) (storage.SummaryStore, error) {
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	backing, err := storage.OpenSqlite(dbPath)
	if err != nil {
		return nil, err
	}
	return storage.NewCache(backing, 0, 0), nil
}

func createProvider(providerName string) (llm.Provider, error) {
	if providerName == "" {
		return nil, fmt.Errorf("--provider is required for this command")
	}

	providerType, err := llm.ParseProviderType(providerName)
	if err != nil {
		return nil, err
	}

	settings, err := config.New(providerName)
	if err != nil {
		return nil, err
	}

	apiKey, err := config.APIKeyFor(providerName)
	if err != nil {
		return nil, err
	}

	return providerType.
		Model(settings.LLM.Model).
		MaxTokens(settings.LLM.MaxTokens).
		Temperature(float32(settings.LLM.Temperature)).
		APIKey(apiKey)
}

// truncateString truncates a string to maxLen runes, preserving UTF-8 boundaries.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
