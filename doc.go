// Package llmrouter provides tiered model selection and budgeted batch
// dispatch against OpenAI-compatible chat-completion endpoints.
//
// The router picks one model per request from a tier-keyed catalog,
// builds an operation-specific prompt, issues a single completion
// request, and returns a terminal [ProcessingResult] carrying the
// payload, token usage, and cost. Nothing below the router boundary
// escapes as an error: network failures, provider errors, and malformed
// responses are all converted to data.
//
// # Basic Usage
//
//	client := openrouter.New(os.Getenv("OPENROUTER_API_KEY"))
//	r := llmrouter.New(client, model.Default())
//
//	res := r.Process(ctx, "Great product launch today!", llmrouter.OpCategorize,
//	    llmrouter.WithTier(llmrouter.TierFree))
//	if res.Success {
//	    fmt.Println(res.ModelUsed, res.Cost)
//	}
//
// Batch processing fans out over fixed-size chunks with pacing between
// them:
//
//	results := r.ProcessBatch(ctx, contents, llmrouter.OpGenerateTags,
//	    llmrouter.WithTier(llmrouter.TierPro))
//
// Model catalogs live in the [github.com/secondbrainhq/llmrouter/model]
// package, the OpenRouter transport in
// [github.com/secondbrainhq/llmrouter/provider/openrouter], and
// per-user quota accounting in
// [github.com/secondbrainhq/llmrouter/quota].
package llmrouter
