// The three summarization algorithms.
//
// Information Hiding:
// - Batch wiring per strategy
// - Which generation sites are agent-assisted
package summarize

import (
	"context"
	"strings"

	"github.com/richinex/procrustes/batch"
	"github.com/richinex/procrustes/document"
)

// stuff concatenates every document into one prompt and generates once.
func (c *Chain) stuff(ctx context.Context, docs []document.Document) (Result, error) {
	text := strings.Join(document.Contents(docs), joinSeparator)
	summary, err := c.generateFinal(ctx, c.summaryPrompt(c.cfg.Prompts.Stuff, text))
	if err != nil {
		return Result{}, err
	}
	return c.govern(ctx, summary)
}

// mapReduce summarizes each document in concurrent batches, then combines
// the per-document summaries with one reduce generation. The combined
// text preserves input document order no matter how the batch completes.
func (c *Chain) mapReduce(ctx context.Context, docs []document.Document) (Result, error) {
	summaries, err := batch.Process(ctx, docs, c.batchConfig(),
		func(ctx context.Context, doc document.Document, _ int) (string, error) {
			return c.client.Generate(ctx, c.summaryPrompt(c.cfg.Prompts.Map, doc.Content))
		})
	if err != nil {
		return Result{}, err
	}

	combined := strings.Join(summaries, joinSeparator)
	summary, err := c.generateFinal(ctx, c.summaryPrompt(c.cfg.Prompts.Combine, combined))
	if err != nil {
		return Result{}, err
	}
	return c.govern(ctx, summary)
}

// refine folds each document into a running summary. Batching only groups
// and paces the work here; refinement is inherently sequential because
// each step depends on the previous summary.
func (c *Chain) refine(ctx context.Context, docs []document.Document) (Result, error) {
	if len(docs) == 0 {
		return c.govern(ctx, "")
	}

	summary, err := c.client.Generate(ctx, c.summaryPrompt(c.cfg.Prompts.RefineInitial, docs[0].Content))
	if err != nil {
		return Result{}, err
	}

	groups := batch.Chunk(docs[1:], c.cfg.BatchSize)
	for gi, group := range groups {
		for _, doc := range group {
			summary, err = c.client.Generate(ctx, c.refinePrompt(summary, doc.Content))
			if err != nil {
				return Result{}, err
			}
		}
		if gi < len(groups)-1 {
			if err := batch.Sleep(ctx, c.cfg.BatchDelay); err != nil {
				return Result{}, err
			}
		}
	}

	return c.govern(ctx, summary)
}

func (c *Chain) batchConfig() batch.Config {
	return batch.Config{Size: c.cfg.BatchSize, Delay: c.cfg.BatchDelay}
}
