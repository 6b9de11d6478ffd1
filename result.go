package llmrouter

// Payload is the structured-or-text result of a dispatch. Structured
// operations yield the parsed JSON object; unstructured operations, and
// structured operations whose response could not be parsed, yield
// {"text": <raw response>}.
type Payload map[string]any

// TextPayload wraps a raw response string as an unstructured payload.
func TextPayload(text string) Payload {
	return Payload{"text": text}
}

// Text returns the raw text of an unstructured payload, or the empty
// string if the payload is structured.
func (p Payload) Text() string {
	s, _ := p["text"].(string)
	return s
}

// ProcessingResult is the terminal outcome of one dispatched item. It
// is never mutated after construction. A batch of N items always yields
// exactly N results in input order.
type ProcessingResult struct {
	Success    bool    `json:"success"`
	Payload    Payload `json:"result,omitempty"`
	Err        string  `json:"error,omitempty"`
	ModelUsed  string  `json:"model_used,omitempty"`
	TokensUsed int     `json:"tokens_used,omitempty"`
	Cost       float64 `json:"cost,omitempty"`
}

// failure builds a failed result. modelUsed may be empty when failure
// occurred before a model was selected.
func failure(modelUsed, errMsg string) ProcessingResult {
	return ProcessingResult{
		Success:   false,
		Err:       errMsg,
		ModelUsed: modelUsed,
	}
}
