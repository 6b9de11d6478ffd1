package llmrouter

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Default router settings.
const (
	// DefaultRequestTimeout bounds each outbound completion call so one
	// slow backend cannot stall a batch chunk indefinitely.
	DefaultRequestTimeout = 60 * time.Second
	// DefaultChunkPause is the pause between batch chunks.
	DefaultChunkPause = 2 * time.Second
	// maxOutputTokens bounds the requested output length.
	maxOutputTokens = 500
)

// Router selects a model per request, dispatches the prompt, and
// converts every outcome into a terminal ProcessingResult.
type Router struct {
	client  ChatClient
	catalog Selector
	quota   QuotaRecorder
	logger  *log.Logger
	timeout time.Duration
	pause   time.Duration
}

// New creates a Router dispatching through client, selecting models
// from catalog.
func New(client ChatClient, catalog Selector, opts ...RouterOption) *Router {
	r := &Router{
		client:  client,
		catalog: catalog,
		logger:  log.New(io.Discard),
		timeout: DefaultRequestTimeout,
		pause:   DefaultChunkPause,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouterOption configures a Router at construction.
type RouterOption func(*Router)

// WithRequestTimeout sets the per-request timeout applied to each
// outbound completion call. Zero disables the timeout.
func WithRequestTimeout(d time.Duration) RouterOption {
	return func(r *Router) {
		r.timeout = d
	}
}

// WithChunkPause sets the pause between batch chunks.
func WithChunkPause(d time.Duration) RouterOption {
	return func(r *Router) {
		r.pause = d
	}
}

// WithLogger sets the logger for selection and dispatch diagnostics.
func WithLogger(l *log.Logger) RouterOption {
	return func(r *Router) {
		r.logger = l
	}
}

// WithQuota wires a quota recorder. When set, requests carrying a user
// ID are checked against limits before dispatch and recorded after a
// successful one.
func WithQuota(q QuotaRecorder) RouterOption {
	return func(r *Router) {
		r.quota = q
	}
}

// Process executes one full processing request: select a model, build
// the prompt, dispatch, and account usage. It always returns a
// terminal ProcessingResult; failures are converted to data, never
// returned as errors.
func (r *Router) Process(ctx context.Context, content string, op Operation, opts ...Option) ProcessingResult {
	o := ApplyOptions(opts...)

	if content == "" {
		return failure("", "content must not be empty")
	}

	desc := r.catalog.Select(len(content), o.Tier, op, o.Budget)
	if desc.Name == "" {
		return failure("", "no models available for tier "+o.Tier.String())
	}
	r.logger.Debug("selected model",
		"model", desc.Name, "tier", o.Tier, "operation", op, "budget", o.Budget)

	if r.quota != nil && o.UserID != "" {
		est := EstimateTokens(len(content))
		check, err := r.quota.CheckLimits(ctx, o.UserID, est, float64(est)*desc.CostPerToken)
		if err != nil {
			return failure(desc.Name, "quota check failed: "+err.Error())
		}
		if !check.CanProceed {
			return failure(desc.Name, "quota exceeded: "+check.Reason)
		}
	}

	req := CompletionRequest{
		Model:       desc.Name,
		Prompt:      BuildPrompt(content, op),
		MaxTokens:   min(maxOutputTokens, desc.MaxTokens),
		Temperature: op.Temperature(),
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	comp, err := r.client.Complete(ctx, req)
	if err != nil {
		r.logger.Warn("dispatch failed", "model", desc.Name, "err", err)
		return failure(desc.Name, err.Error())
	}

	cost := float64(comp.TotalTokens) * desc.CostPerToken

	if r.quota != nil && o.UserID != "" {
		if err := r.quota.RecordUsage(ctx, o.UserID, op, desc.Name, comp.TotalTokens, cost); err != nil {
			// Accounting failure does not void a completed call.
			r.logger.Warn("usage recording failed", "user", o.UserID, "err", err)
		}
	}

	return ProcessingResult{
		Success:    true,
		Payload:    parsePayload(comp.Content, op),
		ModelUsed:  desc.Name,
		TokensUsed: comp.TotalTokens,
		Cost:       cost,
	}
}

// parsePayload converts the raw response text into a Payload.
// Structured operations attempt a JSON parse and degrade gracefully to
// an unstructured text payload when the body does not conform.
func parsePayload(raw string, op Operation) Payload {
	if !op.Structured() {
		return TextPayload(raw)
	}
	var parsed Payload
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed == nil {
		return TextPayload(raw)
	}
	return parsed
}
