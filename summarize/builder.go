// Chain builder for fluent configuration.
//
// Information Hiding:
// - Builder state management hidden
// - Default value application hidden
package summarize

import (
	"time"

	"github.com/richinex/procrustes/llm"
	"github.com/richinex/procrustes/size"
)

// Builder provides fluent configuration for creating chains.
// Usage: summarize.NewBuilder(provider) - no stutter.
type Builder struct {
	provider llm.Provider
	cfg      Config
}

// NewBuilder creates a new chain builder over the given provider,
// starting from the default configuration.
func NewBuilder(provider llm.Provider) *Builder {
	return &Builder{
		provider: provider,
		cfg:      DefaultConfig(),
	}
}

// Strategy sets the summarization algorithm.
func (b *Builder) Strategy(s StrategyType) *Builder {
	b.cfg.Strategy = s
	return b
}

// BatchSize sets the number of documents per concurrent group.
func (b *Builder) BatchSize(n int) *Builder {
	b.cfg.BatchSize = n
	return b
}

// BatchDelay sets the pause between consecutive groups.
func (b *Builder) BatchDelay(d time.Duration) *Builder {
	b.cfg.BatchDelay = d
	return b
}

// MaxOutputSize sets the output budget; zero disables governance.
func (b *Builder) MaxOutputSize(n int) *Builder {
	b.cfg.MaxOutputSize = n
	return b
}

// SizeUnit sets how the output budget is measured.
func (b *Builder) SizeUnit(u size.Unit) *Builder {
	b.cfg.SizeUnit = u
	return b
}

// AgentAssist toggles the tool-using generation loop.
func (b *Builder) AgentAssist(enabled bool) *Builder {
	b.cfg.AgentAssist = enabled
	return b
}

// MapPrompt overrides the map-phase template.
func (b *Builder) MapPrompt(template string) *Builder {
	b.cfg.Prompts.Map = template
	return b
}

// CombinePrompt overrides the reduce-phase template.
func (b *Builder) CombinePrompt(template string) *Builder {
	b.cfg.Prompts.Combine = template
	return b
}

// StuffPrompt overrides the stuff template.
func (b *Builder) StuffPrompt(template string) *Builder {
	b.cfg.Prompts.Stuff = template
	return b
}

// RefineInitialPrompt overrides the template for the first refine step.
func (b *Builder) RefineInitialPrompt(template string) *Builder {
	b.cfg.Prompts.RefineInitial = template
	return b
}

// RefinePrompt overrides the template folding new context into the
// running summary.
func (b *Builder) RefinePrompt(template string) *Builder {
	b.cfg.Prompts.Refine = template
	return b
}

// Config returns the configuration accumulated so far.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build creates the chain.
func (b *Builder) Build() *Chain {
	return New(b.provider, b.cfg)
}
