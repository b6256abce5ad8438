package summarize

import (
	"errors"
	"testing"
)

func TestParseStrategyType(t *testing.T) {
	tests := []struct {
		input string
		want  StrategyType
	}{
		{"stuff", StrategyStuff},
		{"Stuff", StrategyStuff},
		{"map_reduce", StrategyMapReduce},
		{"map-reduce", StrategyMapReduce},
		{"mapreduce", StrategyMapReduce},
		{"MAP_REDUCE", StrategyMapReduce},
		{"refine", StrategyRefine},
		{" refine ", StrategyRefine},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrategyType(tt.input)
			if err != nil {
				t.Fatalf("ParseStrategyType(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStrategyType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStrategyTypeUnknown(t *testing.T) {
	_, err := ParseStrategyType("unknown")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("Expected ErrUnknownStrategy, got %v", err)
	}
}

func TestStrategyTypeStringRoundTrip(t *testing.T) {
	for _, s := range SupportedStrategies() {
		parsed, err := ParseStrategyType(s.String())
		if err != nil {
			t.Fatalf("Round trip failed for %v: %v", s, err)
		}
		if parsed != s {
			t.Errorf("Round trip mismatch: %v -> %v", s, parsed)
		}
	}
}

func TestStrategyTypeDescriptions(t *testing.T) {
	for _, s := range SupportedStrategies() {
		if s.Description() == "" {
			t.Errorf("Missing description for %v", s)
		}
	}
	if StrategyType(42).Description() != "" {
		t.Error("Unexpected description for unknown strategy")
	}
}
