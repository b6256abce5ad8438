package summarize

// SizeValidation reports how a generated summary measured against the
// configured budget. A fresh value is produced on every check.
type SizeValidation struct {
	// Valid is true when the text fits the budget, or no budget is set.
	Valid bool `json:"valid"`
	// ActualSize is the measured size of the text.
	ActualSize int `json:"actualSize"`
	// MaxSize is the configured budget; zero when governance is disabled.
	MaxSize int `json:"maxSize,omitempty"`
	// Unit names the measurement unit.
	Unit string `json:"unit"`
	// Warning describes the overage when the text does not fit.
	Warning string `json:"warning,omitempty"`
	// RetryCount is 0 when the first validation passed and 1 when any
	// regeneration path was taken, however many attempts it took.
	RetryCount int `json:"retryCount"`
	// Attempts is the exact number of regeneration attempts performed.
	Attempts int `json:"attempts,omitempty"`
}

// Result is the terminal artifact of one summarization run, owned by the
// caller after return.
type Result struct {
	// Text is the final summary.
	Text string `json:"text"`
	// Size is the validation outcome for Text. Callers that care about
	// the budget must inspect Size.Valid; an oversized summary is
	// returned, not dropped.
	Size SizeValidation `json:"sizeValidation"`
}
