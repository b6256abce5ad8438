package llm

import (
	"os"
	"testing"
)

func TestParseProviderType(t *testing.T) {
	tests := []struct {
		input    string
		expected ProviderType
	}{
		{"openai", ProviderOpenAI},
		{"OpenAI", ProviderOpenAI},
		{"gpt", ProviderOpenAI},
		{"anthropic", ProviderAnthropic},
		{"claude", ProviderAnthropic},
		{"deepseek", ProviderDeepSeek},
		{"gemini", ProviderGemini},
		{"google", ProviderGemini},
	}

	for _, tt := range tests {
		got, err := ParseProviderType(tt.input)
		if err != nil {
			t.Errorf("ParseProviderType(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseProviderType(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseProviderTypeUnknown(t *testing.T) {
	if _, err := ParseProviderType("mistral"); err == nil {
		t.Error("Expected error for unknown provider, got nil")
	}
}

func TestProviderTypeStringRoundTrip(t *testing.T) {
	for _, p := range []ProviderType{ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek, ProviderGemini} {
		parsed, err := ParseProviderType(p.String())
		if err != nil {
			t.Errorf("ParseProviderType(%q) failed: %v", p.String(), err)
			continue
		}
		if parsed != p {
			t.Errorf("Round trip for %v gave %v", p, parsed)
		}
	}
}

func TestProviderTypeDefaults(t *testing.T) {
	for _, p := range []ProviderType{ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek, ProviderGemini} {
		if p.DefaultModel() == "" {
			t.Errorf("Provider %v has no default model", p)
		}
		if p.EnvVar() == "" {
			t.Errorf("Provider %v has no API key env var", p)
		}
	}
}

func TestBuilderAppliesModelAndDefaults(t *testing.T) {
	provider, err := ProviderOpenAI.Model("gpt-4o-mini").APIKey("sk-test")
	if err != nil {
		t.Fatalf("Builder failed: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("Expected provider name 'openai', got %q", provider.Name())
	}
	if provider.Model() != "gpt-4o-mini" {
		t.Errorf("Expected model 'gpt-4o-mini', got %q", provider.Model())
	}
}

func TestBuilderDefaultModel(t *testing.T) {
	provider, err := ProviderAnthropic.APIKey("sk-ant-test")
	if err != nil {
		t.Fatalf("Builder failed: %v", err)
	}
	if provider.Model() != ModelAnthropicClaudeOpus45 {
		t.Errorf("Expected default model %q, got %q", ModelAnthropicClaudeOpus45, provider.Model())
	}
}

func TestBuilderSummaryTunedFallbacks(t *testing.T) {
	provider, err := ProviderOpenAI.APIKey("sk-test")
	if err != nil {
		t.Fatalf("Builder failed: %v", err)
	}

	concrete, ok := provider.(*OpenAIProvider)
	if !ok {
		t.Fatalf("Expected *OpenAIProvider, got %T", provider)
	}
	if concrete.maxTokens != defaultMaxTokens {
		t.Errorf("Expected max tokens %d, got %d", defaultMaxTokens, concrete.maxTokens)
	}
	if concrete.temperature != defaultTemperature {
		t.Errorf("Expected temperature %v, got %v", float32(defaultTemperature), concrete.temperature)
	}
}

func TestBuilderExplicitSettingsWin(t *testing.T) {
	provider, err := ProviderOpenAI.
		Model("gpt-4o-mini").
		MaxTokens(2048).
		Temperature(0.9).
		APIKey("sk-test")
	if err != nil {
		t.Fatalf("Builder failed: %v", err)
	}

	concrete, ok := provider.(*OpenAIProvider)
	if !ok {
		t.Fatalf("Expected *OpenAIProvider, got %T", provider)
	}
	if concrete.maxTokens != 2048 {
		t.Errorf("Expected max tokens 2048, got %d", concrete.maxTokens)
	}
	if concrete.temperature != 0.9 {
		t.Errorf("Expected temperature 0.9, got %v", concrete.temperature)
	}
}

func TestFromEnvMissingKey(t *testing.T) {
	saved := os.Getenv("DEEPSEEK_API_KEY")
	os.Unsetenv("DEEPSEEK_API_KEY")
	defer func() {
		if saved != "" {
			os.Setenv("DEEPSEEK_API_KEY", saved)
		}
	}()

	if _, err := ProviderDeepSeek.FromEnv(); err == nil {
		t.Error("Expected error when API key env var is unset, got nil")
	}
}
