package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/richinex/procrustes/llm"
	"github.com/richinex/procrustes/size"
	"github.com/richinex/procrustes/tools"
)

// scriptedProvider plays back a fixed sequence of completions and records
// the message history it was given on each call.
type scriptedProvider struct {
	script   []llm.Completion
	err      error
	calls    int
	received [][]llm.Message
}

func (s *scriptedProvider) Name() string  { return "scripted" }
func (s *scriptedProvider) Model() string { return "scripted-model" }

func (s *scriptedProvider) Complete(ctx context.Context, messages []llm.Message) (llm.Completion, error) {
	return s.CompleteWithTools(ctx, messages, nil)
}

func (s *scriptedProvider) CompleteWithTools(_ context.Context, messages []llm.Message, _ []llm.ToolDefinition) (llm.Completion, error) {
	s.received = append(s.received, messages)
	if s.err != nil {
		return llm.Completion{}, s.err
	}
	if s.calls >= len(s.script) {
		return llm.Completion{Content: "out of script"}, nil
	}
	completion := s.script[s.calls]
	s.calls++
	return completion, nil
}

var _ llm.Provider = (*scriptedProvider)(nil)

func governanceConfig(t *testing.T, maxIterations int) Config {
	t.Helper()
	registry, err := tools.ForSizeGovernance(size.NewMeasurer(), size.UnitCharacters, 50)
	if err != nil {
		t.Fatalf("ForSizeGovernance failed: %v", err)
	}
	return Config{
		Name:          "sizer",
		SystemPrompt:  "Check your sizes before answering.",
		Registry:      registry,
		MaxIterations: maxIterations,
	}
}

func toolCall(id, name, args string) llm.ToolCall {
	return llm.ToolCall{ID: id, Name: name, Arguments: json.RawMessage(args)}
}

func TestExecuteToolLoopThenFinal(t *testing.T) {
	provider := &scriptedProvider{script: []llm.Completion{
		{ToolCalls: []llm.ToolCall{toolCall("c1", "count_size", `{"text":"Hello"}`)}},
		{Content: "A fitting summary."},
	}}
	a := New(governanceConfig(t, 4), provider)

	response := a.Execute(context.Background(), "Summarize the text")
	if !response.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", response.Type, response.Error)
	}
	if response.Result != "A fitting summary." {
		t.Errorf("Unexpected result: %q", response.Result)
	}
	if provider.calls != 2 {
		t.Errorf("Expected 2 LLM calls, got %d", provider.calls)
	}
	if len(response.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(response.Steps))
	}
	if response.Steps[0].Tool != "count_size" || response.Steps[0].Observation != "5 characters" {
		t.Errorf("Unexpected tool step: %+v", response.Steps[0])
	}

	// The second call must have seen the assistant tool call and its result.
	second := provider.received[1]
	if len(second) != 4 {
		t.Fatalf("Expected 4 messages on second call, got %d", len(second))
	}
	if second[2].Role != "assistant" || len(second[2].ToolCalls) != 1 {
		t.Errorf("Expected assistant message with tool call, got %+v", second[2])
	}
	last := second[3]
	if last.Role != "tool" || last.ToolCallID != "c1" || last.Content != "5 characters" {
		t.Errorf("Unexpected tool result message: %+v", last)
	}
}

func TestExecuteValidateSizeObservation(t *testing.T) {
	provider := &scriptedProvider{script: []llm.Completion{
		{ToolCalls: []llm.ToolCall{toolCall("v1", "validate_size", `{"text":"short"}`)}},
		{Content: "done"},
	}}
	a := New(governanceConfig(t, 4), provider)

	response := a.Execute(context.Background(), "Summarize the text")
	if !response.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", response.Type, response.Error)
	}
	if !strings.Contains(response.Steps[0].Observation, `"valid":true`) {
		t.Errorf("Expected validation report observation, got %q", response.Steps[0].Observation)
	}
}

func TestExecuteUnknownToolFedBackAsError(t *testing.T) {
	provider := &scriptedProvider{script: []llm.Completion{
		{ToolCalls: []llm.ToolCall{toolCall("x1", "bogus", `{}`)}},
		{Content: "recovered"},
	}}
	a := New(governanceConfig(t, 4), provider)

	response := a.Execute(context.Background(), "Summarize the text")
	if !response.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", response.Type, response.Error)
	}
	if !strings.Contains(response.Steps[0].Observation, "tool 'bogus' not found") {
		t.Errorf("Expected not-found observation, got %q", response.Steps[0].Observation)
	}
	second := provider.received[1]
	if !strings.Contains(second[len(second)-1].Content, "Error:") {
		t.Errorf("Expected error observation fed back, got %q", second[len(second)-1].Content)
	}
}

func TestExecuteMaxIterations(t *testing.T) {
	provider := &scriptedProvider{script: []llm.Completion{
		{ToolCalls: []llm.ToolCall{toolCall("c1", "count_size", `{"text":"a"}`)}},
		{ToolCalls: []llm.ToolCall{toolCall("c2", "count_size", `{"text":"b"}`)}},
		{ToolCalls: []llm.ToolCall{toolCall("c3", "count_size", `{"text":"c"}`)}},
	}}
	a := New(governanceConfig(t, 2), provider)

	response := a.Execute(context.Background(), "Summarize the text")
	if response.Type != ResponseTimeout {
		t.Fatalf("Expected timeout, got %v", response.Type)
	}
	if provider.calls != 2 {
		t.Errorf("Expected 2 LLM calls, got %d", provider.calls)
	}
	if response.Metadata.LLMCalls != 2 {
		t.Errorf("Expected 2 recorded LLM calls, got %d", response.Metadata.LLMCalls)
	}
}

func TestExecuteProviderError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("boom")}
	a := New(governanceConfig(t, 2), provider)

	response := a.Execute(context.Background(), "Summarize the text")
	if response.Type != ResponseFailure {
		t.Fatalf("Expected failure, got %v", response.Type)
	}
	if !strings.Contains(response.Error, "LLM call failed") {
		t.Errorf("Unexpected error: %q", response.Error)
	}
}

func TestExecuteEmptyFinalAnswer(t *testing.T) {
	provider := &scriptedProvider{script: []llm.Completion{{Content: "   "}}}
	a := New(governanceConfig(t, 2), provider)

	response := a.Execute(context.Background(), "Summarize the text")
	if response.Type != ResponseFailure {
		t.Fatalf("Expected failure, got %v", response.Type)
	}
	if response.Error != "empty final answer" {
		t.Errorf("Unexpected error: %q", response.Error)
	}
}

func TestExecuteNormalizesFinalAnswer(t *testing.T) {
	provider := &scriptedProvider{script: []llm.Completion{
		{Content: `{"content": "Wrapped summary"}`},
	}}
	a := New(governanceConfig(t, 2), provider)

	response := a.Execute(context.Background(), "Summarize the text")
	if !response.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", response.Type, response.Error)
	}
	if response.Result != "Wrapped summary" {
		t.Errorf("Expected unwrapped result, got %q", response.Result)
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	provider := &scriptedProvider{script: []llm.Completion{{Content: "never reached"}}}
	a := New(governanceConfig(t, 2), provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	response := a.Execute(ctx, "Summarize the text")
	if response.Type != ResponseFailure {
		t.Fatalf("Expected failure, got %v", response.Type)
	}
	if !strings.Contains(response.Error, "cancelled") {
		t.Errorf("Unexpected error: %q", response.Error)
	}
	if provider.calls != 0 {
		t.Errorf("Expected no LLM calls, got %d", provider.calls)
	}
}

func TestExecuteAccumulatesUsage(t *testing.T) {
	provider := &scriptedProvider{script: []llm.Completion{
		{
			ToolCalls: []llm.ToolCall{toolCall("c1", "count_size", `{"text":"Hello"}`)},
			Usage:     &llm.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		},
		{
			Content: "done",
			Usage:   &llm.TokenUsage{PromptTokens: 20, CompletionTokens: 7, TotalTokens: 27},
		},
	}}
	a := New(governanceConfig(t, 4), provider)

	response := a.Execute(context.Background(), "Summarize the text")
	if !response.IsSuccess() {
		t.Fatalf("Expected success, got %v: %s", response.Type, response.Error)
	}
	usage := response.Metadata.TokenUsage
	if usage == nil {
		t.Fatal("Expected token usage")
	}
	if usage.PromptTokens != 30 || usage.CompletionTokens != 12 || usage.TotalTokens != 42 {
		t.Errorf("Unexpected usage totals: %+v", usage)
	}
}
