package llmrouter

// Descriptor describes one callable backend model. Immutable; defined
// once per tier at process start.
type Descriptor struct {
	// Name is the provider-side model identifier.
	Name string
	// CostPerToken is the blended per-token price in USD. Always
	// positive.
	CostPerToken float64
	// MaxTokens is the context-size ceiling. Always positive.
	MaxTokens int
	// Endpoint is the chat-completions URL the model is served from.
	Endpoint string
	// SupportsJSON reports whether the model reliably produces
	// structured output.
	SupportsJSON bool
}

// Selector picks exactly one model descriptor for a request. The model
// package provides the tier-keyed catalog implementation.
type Selector interface {
	// ModelsFor returns the ordered descriptors visible to a tier.
	ModelsFor(tier Tier) []Descriptor
	// Select picks one descriptor by content length, tier, operation,
	// and optional budget ceiling (0 means none). The returned
	// descriptor is advisory when no candidate satisfied every
	// constraint; see the model package for the fallback policy.
	Select(contentLength int, tier Tier, op Operation, budget float64) Descriptor
}

// EstimateTokens approximates the tokens a request will consume. The
// estimate is deliberately rough and capped to match the bounded
// output length used at dispatch.
func EstimateTokens(contentLength int) int {
	if est := contentLength * 2; est < 500 {
		return est
	}
	return 500
}
