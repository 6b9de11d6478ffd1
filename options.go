package llmrouter

// Options contains per-request configuration for Process and
// ProcessBatch.
type Options struct {
	Tier   Tier
	Budget float64 // 0 means no budget ceiling
	UserID string  // empty skips quota enforcement
}

// Option is a functional option for configuring a processing request.
type Option func(*Options)

// WithTier sets the user subscription tier. Defaults to TierFree.
func WithTier(tier Tier) Option {
	return func(o *Options) {
		o.Tier = tier
	}
}

// WithBudget sets a budget ceiling in USD for model selection. A zero
// or negative budget means no ceiling.
func WithBudget(budget float64) Option {
	return func(o *Options) {
		o.Budget = budget
	}
}

// WithUser attaches a user ID so quota limits are checked before
// dispatch and usage is recorded after it. Ignored unless the router
// was built with a QuotaRecorder.
func WithUser(userID string) Option {
	return func(o *Options) {
		o.UserID = userID
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{Tier: TierFree}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
