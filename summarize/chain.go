// Package summarize batches LLM document summarization and governs the
// size of what comes back.
//
// Three strategies are provided: Stuff (everything in one prompt),
// MapReduce (per-document summaries combined into one) and Refine (a
// running summary folded over the documents). Generation calls are
// grouped into concurrent batches with optional pacing between groups,
// and an optional output budget drives validation with bounded
// regeneration.
//
// Information Hiding:
// - Strategy dispatch and per-strategy control flow
// - Governance retry loop and prompt wrapping
package summarize

import (
	"context"
	"fmt"

	"github.com/richinex/procrustes/document"
	"github.com/richinex/procrustes/llm"
	"github.com/richinex/procrustes/size"
)

// joinSeparator sits between document contents and between map summaries.
const joinSeparator = "\n\n"

// Chain is the summarization entry point. A chain is immutable and
// stateless across calls; construct one with New and reuse it.
type Chain struct {
	client   *llm.Client
	cfg      Config
	measurer *size.Measurer
}

// New creates a chain over the given provider. cfg is captured with its
// batching values clamped; later changes to cfg do not affect the chain.
func New(provider llm.Provider, cfg Config) *Chain {
	return &Chain{
		client:   llm.NewClient(provider),
		cfg:      cfg.normalized(),
		measurer: size.NewMeasurer(),
	}
}

// Config returns the chain's effective (clamped) configuration.
func (c *Chain) Config() Config {
	return c.cfg
}

// WithCallOptions returns a new chain whose generation calls carry opts.
// The receiver is not modified.
func (c *Chain) WithCallOptions(opts llm.CallOptions) *Chain {
	clone := *c
	clone.client = c.client.WithOptions(opts)
	return &clone
}

// Summarize runs the configured strategy over docs. ctx cancels pending
// generation calls; cancellation is all-or-nothing for the in-flight
// batch group.
func (c *Chain) Summarize(ctx context.Context, docs []document.Document) (Result, error) {
	switch c.cfg.Strategy {
	case StrategyStuff:
		return c.stuff(ctx, docs)
	case StrategyMapReduce:
		return c.mapReduce(ctx, docs)
	case StrategyRefine:
		return c.refine(ctx, docs)
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(c.cfg.Strategy))
	}
}

// SummarizeSource loads documents from src and summarizes them.
func (c *Chain) SummarizeSource(ctx context.Context, src document.Source, index int) (Result, error) {
	docs, err := src.ProcessItem(ctx, index)
	if err != nil {
		return Result{}, fmt.Errorf("loading documents: %w", err)
	}
	return c.Summarize(ctx, docs)
}

func (c *Chain) governor() *governor {
	return &governor{
		client:   c.client,
		measurer: c.measurer,
		maxSize:  c.cfg.MaxOutputSize,
		unit:     c.cfg.SizeUnit,
	}
}

// govern runs a strategy's final text through validation and regeneration.
func (c *Chain) govern(ctx context.Context, text string) (Result, error) {
	final, validation, err := c.governor().enforce(ctx, text)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: final, Size: validation}, nil
}
