// Summarization configuration.
//
// Information Hiding:
// - Clamping policy applied once, at chain construction
package summarize

import (
	"time"

	"github.com/richinex/procrustes/size"
)

const (
	// DefaultBatchSize is the number of documents processed concurrently
	// per group when no batch size is configured.
	DefaultBatchSize = 5

	minBatchSize = 1
	maxBatchSize = 1000

	maxBatchDelay = 10 * time.Minute
)

// Prompts overrides the default prompt template per generation site.
// Empty fields keep the defaults. Custom templates are used exactly as
// given, with the {text} and {existing_answer} placeholders substituted.
type Prompts struct {
	Map           string
	Combine       string
	Stuff         string
	RefineInitial string
	Refine        string
}

// Config captures the immutable settings of a summarization chain.
type Config struct {
	// Strategy selects the algorithm.
	Strategy StrategyType
	// BatchSize is the number of documents per concurrent group.
	// Clamped to [1, 1000] at chain construction.
	BatchSize int
	// BatchDelay is the pause between consecutive groups.
	// Clamped to [0, 10m] at chain construction.
	BatchDelay time.Duration
	// MaxOutputSize is the output budget in SizeUnit. Zero or negative
	// disables size governance.
	MaxOutputSize int
	// SizeUnit selects how MaxOutputSize is measured.
	SizeUnit size.Unit
	// AgentAssist routes the final generation through a tool-using loop
	// that can self-check its size. Effective only with MaxOutputSize set.
	AgentAssist bool
	// Prompts overrides the default templates.
	Prompts Prompts
}

// DefaultConfig returns a map-reduce configuration with default batching
// and no size governance.
func DefaultConfig() Config {
	return Config{
		Strategy:  StrategyMapReduce,
		BatchSize: DefaultBatchSize,
		SizeUnit:  size.UnitCharacters,
	}
}

// Governed reports whether an output size budget is configured.
func (c Config) Governed() bool {
	return c.MaxOutputSize > 0
}

// normalized returns a copy with the batching values clamped to their bounds.
func (c Config) normalized() Config {
	if c.BatchSize < minBatchSize {
		c.BatchSize = minBatchSize
	}
	if c.BatchSize > maxBatchSize {
		c.BatchSize = maxBatchSize
	}
	if c.BatchDelay < 0 {
		c.BatchDelay = 0
	}
	if c.BatchDelay > maxBatchDelay {
		c.BatchDelay = maxBatchDelay
	}
	return c
}
