// Agent-assisted final generation.
//
// Information Hiding:
// - Agent construction and tool registry wiring
// - Fallback policy: agent problems never surface to callers
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/richinex/procrustes/agent"
	"github.com/richinex/procrustes/size"
	"github.com/richinex/procrustes/tools"
)

// assistAgentName identifies the tool-using loop in verbose output.
const assistAgentName = "size-governor"

// generateFinal produces the summary for a strategy's last generation
// step. With agent assist active it first tries the tool-using loop; any
// problem there falls back to plain generation without surfacing.
func (c *Chain) generateFinal(ctx context.Context, prompt string) (string, error) {
	if c.cfg.AgentAssist && c.cfg.Governed() {
		if text, ok := c.assistedGenerate(ctx, prompt); ok {
			return text, nil
		}
	}
	return c.client.Generate(ctx, prompt)
}

// assistedGenerate runs the tool-using loop. ok reports whether a usable
// answer came back; every failure mode returns ok=false.
func (c *Chain) assistedGenerate(ctx context.Context, prompt string) (text string, ok bool) {
	registry, err := tools.ForSizeGovernance(c.measurer, c.cfg.SizeUnit, c.cfg.MaxOutputSize)
	if err != nil {
		return "", false
	}

	cfg := agent.DefaultConfig()
	cfg.Name = assistAgentName
	cfg.SystemPrompt = assistSystemPrompt(c.cfg.MaxOutputSize, c.cfg.SizeUnit)
	cfg.Registry = registry

	response := agent.New(cfg, c.client.Provider()).Execute(ctx, prompt)
	if !response.IsSuccess() {
		return "", false
	}
	result := strings.TrimSpace(response.Result)
	if result == "" {
		return "", false
	}
	return result, true
}

// assistSystemPrompt states the hard ceiling and directs the model to
// self-check with the size tools before finalizing.
func assistSystemPrompt(maxSize int, unit size.Unit) string {
	return fmt.Sprintf("You are a summarization assistant. Your final answer must not exceed %d %s. "+
		"Use the count_size tool to measure your draft and the validate_size tool to confirm it fits before answering. "+
		"If the draft does not fit, shorten it and check again. Reply with the final summary text only.",
		maxSize, unit)
}
