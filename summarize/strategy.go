package summarize

import (
	"fmt"
	"strings"
)

// StrategyType selects the summarization algorithm.
type StrategyType int

const (
	// StrategyStuff concatenates every document into a single generation call.
	StrategyStuff StrategyType = iota
	// StrategyMapReduce summarizes each document, then summarizes the summaries.
	StrategyMapReduce
	// StrategyRefine folds each document into a running summary.
	StrategyRefine
)

// String returns the strategy name.
func (s StrategyType) String() string {
	switch s {
	case StrategyStuff:
		return "stuff"
	case StrategyMapReduce:
		return "map_reduce"
	case StrategyRefine:
		return "refine"
	default:
		return "unknown"
	}
}

// Description returns a one-line explanation of the strategy.
func (s StrategyType) Description() string {
	switch s {
	case StrategyStuff:
		return "Concatenate all documents into one prompt and summarize in a single call"
	case StrategyMapReduce:
		return "Summarize each document independently, then summarize the combined summaries"
	case StrategyRefine:
		return "Sequentially fold each document into a running summary"
	default:
		return ""
	}
}

// ParseStrategyType converts a strategy name to a StrategyType.
func ParseStrategyType(s string) (StrategyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stuff":
		return StrategyStuff, nil
	case "map_reduce", "map-reduce", "mapreduce":
		return StrategyMapReduce, nil
	case "refine":
		return StrategyRefine, nil
	default:
		return 0, fmt.Errorf("%w: %s (supported: stuff, map_reduce, refine)", ErrUnknownStrategy, s)
	}
}

// SupportedStrategies returns the strategy names accepted by ParseStrategyType.
func SupportedStrategies() []StrategyType {
	return []StrategyType{StrategyStuff, StrategyMapReduce, StrategyRefine}
}
