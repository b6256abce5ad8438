// Size measurement tools for agent-assisted generation.
//
// Information Hiding:
// - Measurement unit and limit captured at construction
// - Validation report format hidden from the loop that feeds it back

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/richinex/procrustes/size"
)

// CountSizeTool measures a text under a fixed unit. Agents call it to
// check a draft before finalizing.
type CountSizeTool struct {
	BaseTool
	measurer *size.Measurer
	unit     size.Unit
}

// NewCountSizeTool creates a count_size tool bound to a measurer and unit.
func NewCountSizeTool(measurer *size.Measurer, unit size.Unit) *CountSizeTool {
	return &CountSizeTool{measurer: measurer, unit: unit}
}

// Metadata returns the tool metadata.
func (t *CountSizeTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "count_size",
		Description: fmt.Sprintf("Count the size of a text in %s", t.unit),
		Parameters: []ToolParameter{
			{Name: "text", ParamType: "string", Description: "The text to measure", Required: true},
		},
	}
}

type sizeArgs struct {
	Text string `json:"text"`
}

// Validate validates the arguments.
func (t *CountSizeTool) Validate(args json.RawMessage) error {
	var a sizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if a.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

// Execute measures the text.
func (t *CountSizeTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a sizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}

	if a.Text == "" {
		return FailureResultf("text cannot be empty"), nil
	}

	n := t.measurer.Measure(a.Text, t.unit)
	return SuccessResult(fmt.Sprintf("%d %s", n, t.unit)), nil
}

// ValidateSizeTool checks a text against a fixed size limit and reports
// the outcome as JSON the model can read back.
type ValidateSizeTool struct {
	BaseTool
	measurer *size.Measurer
	unit     size.Unit
	maxSize  int
}

// NewValidateSizeTool creates a validate_size tool bound to a measurer,
// unit and limit.
func NewValidateSizeTool(measurer *size.Measurer, unit size.Unit, maxSize int) *ValidateSizeTool {
	return &ValidateSizeTool{measurer: measurer, unit: unit, maxSize: maxSize}
}

// Metadata returns the tool metadata.
func (t *ValidateSizeTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "validate_size",
		Description: fmt.Sprintf("Check whether a text fits within the limit of %d %s", t.maxSize, t.unit),
		Parameters: []ToolParameter{
			{Name: "text", ParamType: "string", Description: "The text to validate", Required: true},
		},
	}
}

// sizeReport is the JSON payload returned to the model.
type sizeReport struct {
	Valid      bool   `json:"valid"`
	ActualSize int    `json:"actual_size"`
	MaxSize    int    `json:"max_size"`
	Unit       string `json:"unit"`
	Overage    int    `json:"overage,omitempty"`
}

// Validate validates the arguments.
func (t *ValidateSizeTool) Validate(args json.RawMessage) error {
	var a sizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if a.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

// Execute validates the text against the limit.
func (t *ValidateSizeTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var a sizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}

	if a.Text == "" {
		return FailureResultf("text cannot be empty"), nil
	}

	actual := t.measurer.Measure(a.Text, t.unit)
	report := sizeReport{
		Valid:      actual <= t.maxSize,
		ActualSize: actual,
		MaxSize:    t.maxSize,
		Unit:       t.unit.String(),
	}
	if actual > t.maxSize {
		report.Overage = actual - t.maxSize
	}

	out, err := json.Marshal(report)
	if err != nil {
		return FailureResult(fmt.Errorf("failed to encode report: %w", err)), nil
	}
	return SuccessResult(string(out)), nil
}

// Verify both size tools implement Tool
var (
	_ Tool = (*CountSizeTool)(nil)
	_ Tool = (*ValidateSizeTool)(nil)
)
