package model

import (
	"sort"

	ai "github.com/secondbrainhq/llmrouter"
)

// Catalog holds, per tier, the ordered set of models dispatchable
// under that tier's subscription. No mutation operation exists;
// reload by constructing a new Catalog.
type Catalog struct {
	tiers map[ai.Tier][]ai.Descriptor
}

// NewCatalog creates a catalog from a tier-keyed table. The table is
// copied; later changes to the argument do not affect the catalog.
func NewCatalog(tiers map[ai.Tier][]ai.Descriptor) *Catalog {
	copied := make(map[ai.Tier][]ai.Descriptor, len(tiers))
	for tier, models := range tiers {
		copied[tier] = append([]ai.Descriptor(nil), models...)
	}
	return &Catalog{tiers: copied}
}

// ModelsFor returns the ordered descriptors visible to a tier. The
// returned slice is a copy; callers may reorder it freely.
func (c *Catalog) ModelsFor(tier ai.Tier) []ai.Descriptor {
	return append([]ai.Descriptor(nil), c.tiers[tier]...)
}

// Select picks exactly one descriptor for a request.
//
// Candidates are ordered cost-ascending for cheap/fast operations and
// cost-descending for quality-sensitive ones (stable, so catalog order
// breaks ties), then filtered by budget (when budget > 0, using an
// estimate of min(contentLength*2, 500) tokens) and by content length
// against MaxTokens. The first survivor wins.
//
// When the filtered set is empty, Select falls back to the tier's
// single cheapest descriptor. The fallback may violate the caller's
// budget or length constraint; treat it as advisory and re-validate
// before spending.
func (c *Catalog) Select(contentLength int, tier ai.Tier, op ai.Operation, budget float64) ai.Descriptor {
	candidates := c.ModelsFor(tier)

	sort.SliceStable(candidates, func(i, j int) bool {
		if op.PrefersCheap() {
			return candidates[i].CostPerToken < candidates[j].CostPerToken
		}
		return candidates[i].CostPerToken > candidates[j].CostPerToken
	})

	if budget > 0 {
		est := ai.EstimateTokens(contentLength)
		filtered := candidates[:0]
		for _, m := range candidates {
			if m.CostPerToken*float64(est) <= budget {
				filtered = append(filtered, m)
			}
		}
		candidates = filtered
	}

	eligible := candidates[:0]
	for _, m := range candidates {
		if m.MaxTokens >= contentLength {
			eligible = append(eligible, m)
		}
	}

	if len(eligible) == 0 {
		return c.cheapest(tier)
	}
	return eligible[0]
}

// cheapest returns the lowest-cost descriptor in the tier's full list,
// or the zero Descriptor for a tier the catalog does not know.
func (c *Catalog) cheapest(tier ai.Tier) ai.Descriptor {
	models := c.tiers[tier]
	if len(models) == 0 {
		return ai.Descriptor{}
	}
	best := models[0]
	for _, m := range models[1:] {
		if m.CostPerToken < best.CostPerToken {
			best = m
		}
	}
	return best
}

// DefaultEndpoint is the chat-completions endpoint every model in the
// default catalog is served from.
const DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// Default returns the built-in OpenRouter catalog.
// Model pricing last verified: August 2025.
func Default() *Catalog {
	return NewCatalog(map[ai.Tier][]ai.Descriptor{
		ai.TierFree: {
			{Name: "anthropic/claude-3-haiku", CostPerToken: 0.00000025, MaxTokens: 4000, Endpoint: DefaultEndpoint, SupportsJSON: true},
			{Name: "openai/gpt-3.5-turbo", CostPerToken: 0.000002, MaxTokens: 4000, Endpoint: DefaultEndpoint, SupportsJSON: true},
		},
		ai.TierPro: {
			{Name: "anthropic/claude-3-sonnet", CostPerToken: 0.000015, MaxTokens: 4000, Endpoint: DefaultEndpoint, SupportsJSON: true},
			{Name: "openai/gpt-4", CostPerToken: 0.00003, MaxTokens: 8000, Endpoint: DefaultEndpoint, SupportsJSON: true},
			{Name: "openai/gpt-3.5-turbo", CostPerToken: 0.000002, MaxTokens: 4000, Endpoint: DefaultEndpoint, SupportsJSON: true},
		},
		ai.TierPremium: {
			{Name: "anthropic/claude-3-opus", CostPerToken: 0.000075, MaxTokens: 4000, Endpoint: DefaultEndpoint, SupportsJSON: true},
			{Name: "openai/gpt-4", CostPerToken: 0.00003, MaxTokens: 8000, Endpoint: DefaultEndpoint, SupportsJSON: true},
			{Name: "anthropic/claude-3-sonnet", CostPerToken: 0.000015, MaxTokens: 4000, Endpoint: DefaultEndpoint, SupportsJSON: true},
		},
	})
}

var _ ai.Selector = (*Catalog)(nil)
