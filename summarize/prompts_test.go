package summarize

import (
	"context"
	"strings"
	"testing"

	"github.com/richinex/procrustes/document"
	"github.com/richinex/procrustes/size"
)

func TestRenderPrompt(t *testing.T) {
	got := renderPrompt("A: {existing_answer}, B: {text}, again: {text}", map[string]string{
		"existing_answer": "one",
		"text":            "two",
	})
	want := "A: one, B: two, again: two"
	if got != want {
		t.Errorf("renderPrompt = %q, want %q", got, want)
	}
}

func TestRenderPromptKeepsPlaceholderTokensInValues(t *testing.T) {
	// A document about prompt templates legitimately contains the
	// placeholder tokens themselves; they must come through untouched.
	got := renderPrompt("{existing_answer}\n---\n{text}", map[string]string{
		"existing_answer": "summary mentioning {text}",
		"text":            "a guide to the {existing_answer} placeholder",
	})
	want := "summary mentioning {text}\n---\na guide to the {existing_answer} placeholder"
	if got != want {
		t.Errorf("renderPrompt = %q, want %q", got, want)
	}
}

func TestRefinePromptWithPlaceholderBearingContext(t *testing.T) {
	chain := New(&fakeProvider{}, Config{Strategy: StrategyRefine})

	got := chain.refinePrompt("Covers {text} substitution", "Documentation for {existing_answer}")
	if !strings.Contains(got, `up to a certain point: "Covers {text} substitution"`) {
		t.Errorf("Existing answer altered: %q", got)
	}
	if !strings.Contains(got, "------------\nDocumentation for {existing_answer}\n------------") {
		t.Errorf("Context altered: %q", got)
	}
}

func TestRetryPromptTemplateIndexClamped(t *testing.T) {
	third := retryPrompt("draft", 3, 10, size.UnitCharacters)
	beyond := retryPrompt("draft", 7, 10, size.UnitCharacters)
	if third != beyond {
		t.Errorf("Attempts past the last template should reuse it")
	}
	if !strings.Contains(third, "keywords") {
		t.Errorf("Last template should ask for keywords: %q", third)
	}
}

func TestSummaryPromptDefaultUnwrapped(t *testing.T) {
	chain := New(&fakeProvider{}, Config{Strategy: StrategyStuff})

	got := chain.summaryPrompt("", "Document 1")
	want := "Write a concise summary of the following:\n\nDocument 1\n\nCONCISE SUMMARY:"
	if got != want {
		t.Errorf("summaryPrompt = %q, want %q", got, want)
	}
}

func TestDefaultPromptWrappedWhenGoverned(t *testing.T) {
	provider := &fakeProvider{always: "ok"}
	chain := New(provider, Config{Strategy: StrategyStuff, MaxOutputSize: 120})

	if _, err := chain.Summarize(context.Background(), []document.Document{document.New("Document 1")}); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	prompt := provider.prompt(0)
	if !strings.HasPrefix(prompt, "IMPORTANT: Your answer must stay within a hard limit of 120 characters.") {
		t.Errorf("Missing size preamble: %q", prompt)
	}
	if !strings.Contains(prompt, "Write a concise summary of the following:") {
		t.Errorf("Missing default template: %q", prompt)
	}
	if !strings.Contains(prompt, "Hard limit: 120 characters.") {
		t.Errorf("Missing size postamble: %q", prompt)
	}
}

func TestCustomPromptUsedAsGiven(t *testing.T) {
	provider := &fakeProvider{always: "ok"}
	chain := New(provider, Config{
		Strategy:      StrategyStuff,
		MaxOutputSize: 100,
		Prompts:       Prompts{Stuff: "Summarize briefly: {text}"},
	})

	if _, err := chain.Summarize(context.Background(), []document.Document{document.New("Document 1")}); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if got := provider.prompt(0); got != "Summarize briefly: Document 1" {
		t.Errorf("Custom prompt altered: %q", got)
	}
}

func TestRefinePromptDefaultTemplate(t *testing.T) {
	chain := New(&fakeProvider{}, Config{Strategy: StrategyRefine})

	got := chain.refinePrompt("Existing summary", "New context")
	if !strings.Contains(got, `existing summary up to a certain point: "Existing summary"`) {
		t.Errorf("Missing existing answer: %q", got)
	}
	if !strings.Contains(got, "------------\nNew context\n------------") {
		t.Errorf("Missing delimited context: %q", got)
	}
	if !strings.Contains(got, "refine the original summary") {
		t.Errorf("Missing refine instruction: %q", got)
	}
}
