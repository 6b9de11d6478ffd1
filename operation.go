package llmrouter

import "fmt"

// Operation identifies a processing operation. Each operation carries
// its own prompt template, sampling temperature, model ordering
// preference, and output format expectation.
type Operation string

// String returns the operation identifier.
func (o Operation) String() string { return string(o) }

// Supported operations.
const (
	OpCategorize      Operation = "categorize"
	OpSummarize       Operation = "summarize"
	OpExtractInsights Operation = "extract_insights"
	OpGenerateTags    Operation = "generate_tags"
)

// ParseOperation converts a string into an Operation.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OpCategorize, OpSummarize, OpExtractInsights, OpGenerateTags:
		return Operation(s), nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// opPolicy describes how an operation shapes model selection and
// request parameters.
type opPolicy struct {
	// preferCheap orders candidate models cost-ascending when true,
	// cost-descending otherwise (higher cost read as higher quality).
	preferCheap bool
	// temperature is the sampling temperature sent with the request.
	temperature float64
	// structured is true when the operation asks the model for a JSON
	// response that should be parsed into fields.
	structured bool
	// template is the prompt format string with one %s verb for the
	// content.
	template string
}

// policies is the single per-operation lookup table. All call sites
// consult it rather than branching on the operation.
var policies = map[Operation]opPolicy{
	OpCategorize:      {preferCheap: true, temperature: 0.3, structured: true, template: categorizeTemplate},
	OpGenerateTags:    {preferCheap: true, temperature: 0.7, structured: true, template: generateTagsTemplate},
	OpSummarize:       {preferCheap: false, temperature: 0.7, structured: false, template: summarizeTemplate},
	OpExtractInsights: {preferCheap: false, temperature: 0.7, structured: true, template: extractInsightsTemplate},
}

// PrefersCheap reports whether selection should order candidates
// cost-ascending for this operation.
func (o Operation) PrefersCheap() bool { return policies[o].preferCheap }

// Temperature returns the sampling temperature for this operation.
func (o Operation) Temperature() float64 { return policies[o].temperature }

// Structured reports whether the operation expects a JSON response.
func (o Operation) Structured() bool { return policies[o].structured }
