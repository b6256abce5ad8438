// Native tool-call loop implementation.
//
// All agent execution goes through this module: the model is given its
// tool definitions up front, tool calls are executed and fed back as tool
// results, and the first response without tool calls is the final answer.
//
// Information Hiding:
// - Loop internals hidden
// - LLM communication hidden
// - Tool execution coordination hidden

package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/richinex/procrustes/llm"
	"github.com/richinex/procrustes/tools"
)

// Agent executes tasks using native tool calling.
type Agent struct {
	config       Config
	provider     llm.Provider
	toolExecutor *tools.Executor
	verbose      bool
}

// New creates a new agent with the given configuration and provider.
func New(config Config, provider llm.Provider) *Agent {
	if config.Registry == nil {
		config.Registry = tools.NewRegistry()
	}

	return &Agent{
		config:       config,
		provider:     provider,
		toolExecutor: tools.NewExecutor(config.ToolConfig),
		verbose:      false,
	}
}

// WithToolConfig overrides the tool execution configuration.
func (a *Agent) WithToolConfig(config tools.ToolConfig) *Agent {
	a.config.ToolConfig = config
	a.toolExecutor = tools.NewExecutor(config)
	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string {
	return a.config.Name
}

// Verbose enables verbose output (shows tool activity).
func (a *Agent) Verbose(enabled bool) *Agent {
	a.verbose = enabled
	return a
}

// Quiet disables verbose output.
func (a *Agent) Quiet() *Agent {
	a.verbose = false
	return a
}

// Execute runs a task through the tool loop.
func (a *Agent) Execute(ctx context.Context, task string) Response {
	startTime := time.Now()
	var steps []Step
	var totalUsage llm.TokenUsage // Track cumulative token usage
	var llmCalls int              // Track number of LLM calls

	maxIterations := a.config.Iterations()
	definitions := a.config.Registry.Definitions()

	messages := []llm.Message{
		llm.SystemMessage(a.config.SystemPrompt),
		llm.UserMessage(task),
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		// Check context cancellation at top of loop
		if ctx.Err() != nil {
			return NewFailureResponse(
				fmt.Sprintf("execution cancelled: %v", ctx.Err()),
				steps,
				uint64(time.Since(startTime).Milliseconds()),
			)
		}

		if a.verbose {
			fmt.Printf("[%s:%d] Processing...\n", a.config.Name, iteration)
		}

		completion, err := a.provider.CompleteWithTools(ctx, messages, definitions)
		llmCalls++
		if err != nil {
			return NewFailureResponse(
				fmt.Sprintf("LLM call failed: %v", err),
				steps,
				uint64(time.Since(startTime).Milliseconds()),
			)
		}

		if completion.Usage != nil {
			totalUsage.PromptTokens += completion.Usage.PromptTokens
			totalUsage.CompletionTokens += completion.Usage.CompletionTokens
			totalUsage.TotalTokens += completion.Usage.TotalTokens
		}

		// No tool calls - final answer
		if len(completion.ToolCalls) == 0 {
			result := llm.Normalize(completion.Content)
			if result == "" {
				return NewFailureResponse(
					"empty final answer",
					steps,
					uint64(time.Since(startTime).Milliseconds()),
				)
			}

			steps = append(steps, Step{Iteration: iteration, Observation: result})
			return NewSuccessResponse(
				result,
				steps,
				uint64(time.Since(startTime).Milliseconds()),
				a.config.Name,
				&totalUsage,
				llmCalls,
			)
		}

		if a.verbose {
			for _, tc := range completion.ToolCalls {
				args := string(tc.Arguments)
				if len(args) > 100 {
					args = args[:100] + "..."
				}
				fmt.Printf("[%s:%d] Calling: %s(%s)\n", a.config.Name, iteration, tc.Name, args)
			}
		}

		// Add assistant message with its tool calls
		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})

		// Execute tool calls and feed results back
		for _, tc := range completion.ToolCalls {
			observation := a.executeToolCall(ctx, tc)
			messages = append(messages, llm.ToolResultMessage(tc.ID, observation))
			steps = append(steps, Step{Iteration: iteration, Tool: tc.Name, Observation: observation})
		}
	}

	// Max iterations reached
	return NewTimeoutResponse(
		steps,
		uint64(time.Since(startTime).Milliseconds()),
		&totalUsage,
		llmCalls,
	)
}

// executeToolCall runs a single tool call and returns the observation.
// Failures become error observations the model can react to.
func (a *Agent) executeToolCall(ctx context.Context, tc llm.ToolCall) string {
	tool, exists := a.config.Registry.Get(tc.Name)
	if !exists {
		return fmt.Sprintf("Error: tool '%s' not found", tc.Name)
	}

	timeout := time.Duration(a.config.ToolConfig.Timeout()) * time.Second
	result, err := a.toolExecutor.ExecuteWithTimeout(ctx, tool, tc.Arguments, timeout)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if !result.Success() {
		return fmt.Sprintf("Error: %v", result.Error)
	}
	return result.Output
}
