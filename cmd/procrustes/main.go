// Package main provides the procrustes CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/richinex/procrustes/cli"
	"github.com/richinex/procrustes/config"
	"github.com/richinex/procrustes/document"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	provider string
	verbose  bool
	jsonOut  bool
	dbPath   string
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	defaults, err := config.SummaryDefaults()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dbDefault := defaults.CacheDB
	if dbDefault == "" {
		dbDefault = cli.DefaultOptions().DBPath
	}

	rootCmd := &cobra.Command{
		Use:   "procrustes",
		Short: "Size-governed document summarization with LLMs",
		Long: `A CLI for summarizing documents through LLM providers with batching,
size governance and result caching.

Three strategies available:
- stuff: concatenate everything into one prompt (small inputs)
- map_reduce: summarize documents in concurrent batches, then combine
- refine: fold documents one by one into a running summary`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (openai, anthropic, deepseek, gemini)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", dbDefault, "Summary cache database path")

	// Add commands
	rootCmd.AddCommand(summarizeCmd(defaults))
	rootCmd.AddCommand(strategiesCmd())
	rootCmd.AddCommand(toolsCmd())
	rootCmd.AddCommand(cacheCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func summarizeCmd(defaults config.SummaryConfig) *cobra.Command {
	var (
		strategy     string
		batchSize    int
		batchDelay   time.Duration
		maxSize      int
		sizeUnit     string
		agentAssist  bool
		split        bool
		chunkSize    int
		chunkOverlap int
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "summarize [paths...]",
		Short: "Summarize documents from files or stdin",
		Long: `Summarize documents through the configured LLM provider.

Paths may be files, directories or glob patterns (** supported). With no
paths the text to summarize is read from stdin.

Results are cached in a local SQLite database keyed by the document
contents and the run configuration; identical runs are served from the
cache without calling the provider.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := cli.SummarizeRequest{
				Paths:        args,
				Strategy:     strategy,
				BatchSize:    batchSize,
				BatchDelay:   batchDelay,
				MaxSize:      maxSize,
				SizeUnit:     sizeUnit,
				AgentAssist:  agentAssist,
				Split:        split,
				ChunkSize:    chunkSize,
				ChunkOverlap: chunkOverlap,
			}
			opts := cli.Options{
				Provider: provider,
				Verbose:  verbose,
				JSON:     jsonOut,
				NoCache:  noCache,
				DBPath:   dbPath,
			}
			return cli.Summarize(context.Background(), req, opts)
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", defaults.Strategy, "Summarization strategy (stuff, map_reduce, refine)")
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", defaults.BatchSize, "Documents per concurrent batch")
	cmd.Flags().DurationVar(&batchDelay, "batch-delay", defaults.BatchDelay, "Pause between batches (e.g. 500ms, 2s)")
	cmd.Flags().IntVar(&maxSize, "max-size", defaults.MaxSize, "Maximum summary size (0 disables governance)")
	cmd.Flags().StringVar(&sizeUnit, "unit", defaults.SizeUnit, "Size unit (characters, tokens)")
	cmd.Flags().BoolVar(&agentAssist, "agent-assist", defaults.AgentAssist, "Use the size-governor agent for final generation")
	cmd.Flags().BoolVar(&split, "split", false, "Split documents into chunks before summarizing")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", document.DefaultChunkSize, "Chunk size in characters for --split")
	cmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", document.DefaultChunkOverlap, "Chunk overlap in characters for --split")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the summary cache")

	return cmd
}

func strategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List available summarization strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.ListStrategies()
			return nil
		},
	}
}

func toolsCmd() *cobra.Command {
	var verboseTools bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List size tools available to agent-assisted generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.ListTools(verboseTools)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verboseTools, "verbose", "V", false, "Show tool parameters")

	return cmd
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the summary cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.CacheList(context.Background(), 0, cacheOptions())
		},
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cached summaries, most recently accessed first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.CacheList(context.Background(), limit, cacheOptions())
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to list (0 = all)")

	deleteCmd := &cobra.Command{
		Use:   "delete [fingerprint]",
		Short: "Delete one cached summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.CacheDelete(context.Background(), args[0], cacheOptions())
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.CacheClear(context.Background(), cacheOptions())
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(deleteCmd)
	cmd.AddCommand(clearCmd)

	return cmd
}

func cacheOptions() cli.Options {
	return cli.Options{
		Verbose: verbose,
		JSON:    jsonOut,
		DBPath:  dbPath,
	}
}
