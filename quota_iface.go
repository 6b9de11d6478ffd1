package llmrouter

import "context"

// QuotaCheck is the outcome of a pre-dispatch quota check.
type QuotaCheck struct {
	CanProceed bool
	Reason     string
}

// QuotaRecorder gates dispatches against per-user limits and records
// usage afterward. The quota package provides the SQLite-backed
// implementation; the router only needs this interface.
type QuotaRecorder interface {
	CheckLimits(ctx context.Context, userID string, tokensNeeded int, estimatedCost float64) (QuotaCheck, error)
	RecordUsage(ctx context.Context, userID string, op Operation, modelUsed string, tokensUsed int, cost float64) error
}
