package size

import (
	"testing"
)

func TestMeasureCharacters(t *testing.T) {
	m := NewMeasurer()

	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"Summary 1", 9},
		{"héllo", 5},
		{"日本語", 3},
		// Combining accent: two code points, one visual glyph.
		{"é", 2},
	}

	for _, c := range cases {
		got := m.Measure(c.text, UnitCharacters)
		if got != c.want {
			t.Errorf("Measure(%q, characters) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestMeasureTokens(t *testing.T) {
	m := NewMeasurer()

	if got := m.Measure("", UnitTokens); got != 0 {
		t.Errorf("Measure(empty, tokens) = %d, want 0", got)
	}

	got := m.Measure("hello world, this is a test", UnitTokens)
	if got <= 0 {
		t.Errorf("Measure(non-empty, tokens) = %d, want > 0", got)
	}

	// Deterministic across calls regardless of which counting path is active.
	again := m.Measure("hello world, this is a test", UnitTokens)
	if got != again {
		t.Errorf("token count changed between calls: %d then %d", got, again)
	}
}

func TestMeasureTokensFallback(t *testing.T) {
	// A bogus encoding forces the approximation path.
	m := NewMeasurerWithEncoding("no-such-encoding")

	if got := m.Measure("", UnitTokens); got != 0 {
		t.Errorf("fallback Measure(empty) = %d, want 0", got)
	}
	// 8 bytes / 4 = 2.
	if got := m.Measure("12345678", UnitTokens); got != 2 {
		t.Errorf("fallback Measure(8 bytes) = %d, want 2", got)
	}
	// Ceiling: 9 bytes -> 3.
	if got := m.Measure("123456789", UnitTokens); got != 3 {
		t.Errorf("fallback Measure(9 bytes) = %d, want 3", got)
	}
}

func TestApproxTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
	}

	for _, c := range cases {
		if got := approxTokens(c.text); got != c.want {
			t.Errorf("approxTokens(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	cases := []struct {
		input string
		want  Unit
	}{
		{"characters", UnitCharacters},
		{"chars", UnitCharacters},
		{"CHARACTERS", UnitCharacters},
		{"", UnitCharacters},
		{"tokens", UnitTokens},
		{" tokens ", UnitTokens},
	}

	for _, c := range cases {
		got, err := ParseUnit(c.input)
		if err != nil {
			t.Fatalf("ParseUnit(%q) unexpected error: %v", c.input, err)
		}
		if got != c.want {
			t.Errorf("ParseUnit(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseUnitUnknown(t *testing.T) {
	_, err := ParseUnit("bytes")
	if err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestUnitString(t *testing.T) {
	if UnitCharacters.String() != "characters" {
		t.Errorf("UnitCharacters.String() = %q", UnitCharacters.String())
	}
	if UnitTokens.String() != "tokens" {
		t.Errorf("UnitTokens.String() = %q", UnitTokens.String())
	}
}
