package llmrouter

import "context"

// CompletionRequest describes one chat-completion call.
type CompletionRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completion is the provider's answer to a CompletionRequest.
type Completion struct {
	// Content is the text of the first choice.
	Content string
	// TotalTokens is the provider-reported usage for the call.
	TotalTokens int
}

// ChatClient sends one prompt to one backend model and returns a
// single response. Implementations must return a CategorizedError for
// provider and network failures so the router can classify them.
type ChatClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
