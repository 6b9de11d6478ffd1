package model

import (
	"testing"

	ai "github.com/secondbrainhq/llmrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTiers = []ai.Tier{ai.TierFree, ai.TierPro, ai.TierPremium}

func TestDefaultCatalogInvariants(t *testing.T) {
	c := Default()
	for _, tier := range allTiers {
		t.Run(tier.String(), func(t *testing.T) {
			models := c.ModelsFor(tier)
			require.NotEmpty(t, models)
			for _, m := range models {
				assert.NotEmpty(t, m.Name)
				assert.Greater(t, m.CostPerToken, 0.0, "model %s", m.Name)
				assert.Greater(t, m.MaxTokens, 0, "model %s", m.Name)
				assert.Equal(t, DefaultEndpoint, m.Endpoint)
			}
		})
	}
}

func TestModelsForReturnsCopy(t *testing.T) {
	c := Default()
	models := c.ModelsFor(ai.TierFree)
	models[0].Name = "mutated"
	assert.NotEqual(t, "mutated", c.ModelsFor(ai.TierFree)[0].Name)
}

func TestSelect(t *testing.T) {
	c := Default()

	t.Run("is deterministic", func(t *testing.T) {
		a := c.Select(100, ai.TierPro, ai.OpSummarize, 0.01)
		b := c.Select(100, ai.TierPro, ai.OpSummarize, 0.01)
		assert.Equal(t, a, b)
	})

	t.Run("cheap operations pick the cheapest eligible model", func(t *testing.T) {
		for _, op := range []ai.Operation{ai.OpCategorize, ai.OpGenerateTags} {
			for _, tier := range allTiers {
				picked := c.Select(100, tier, op, 0)
				for _, m := range c.ModelsFor(tier) {
					assert.LessOrEqual(t, picked.CostPerToken, m.CostPerToken,
						"tier %s op %s", tier, op)
				}
			}
		}
	})

	t.Run("quality operations pick the priciest eligible model", func(t *testing.T) {
		for _, op := range []ai.Operation{ai.OpSummarize, ai.OpExtractInsights} {
			for _, tier := range allTiers {
				picked := c.Select(100, tier, op, 0)
				for _, m := range c.ModelsFor(tier) {
					assert.GreaterOrEqual(t, picked.CostPerToken, m.CostPerToken,
						"tier %s op %s", tier, op)
				}
			}
		}
	})

	t.Run("budget drops models that would overspend", func(t *testing.T) {
		// 100 chars -> 200 estimated tokens. claude-3-opus at 0.000075
		// would cost 0.015; a 0.01 budget forces gpt-4 instead.
		picked := c.Select(100, ai.TierPremium, ai.OpExtractInsights, 0.01)
		assert.Equal(t, "openai/gpt-4", picked.Name)
	})

	t.Run("content length filters small-context models", func(t *testing.T) {
		// Only gpt-4 in the pro tier handles 5000-token content.
		picked := c.Select(5000, ai.TierPro, ai.OpCategorize, 0)
		assert.Equal(t, "openai/gpt-4", picked.Name)
	})

	t.Run("impossible budget falls back to the tier's cheapest model", func(t *testing.T) {
		// No premium model satisfies a 1e-9 budget; the fallback
		// deliberately ignores the constraint.
		picked := c.Select(100, ai.TierPremium, ai.OpCategorize, 1e-9)
		assert.Equal(t, "anthropic/claude-3-sonnet", picked.Name)
	})

	t.Run("oversized content falls back to the tier's cheapest model", func(t *testing.T) {
		picked := c.Select(1_000_000, ai.TierFree, ai.OpSummarize, 0)
		assert.Equal(t, "anthropic/claude-3-haiku", picked.Name)
	})

	t.Run("cost ties break by catalog order", func(t *testing.T) {
		tied := NewCatalog(map[ai.Tier][]ai.Descriptor{
			ai.TierFree: {
				{Name: "first", CostPerToken: 0.000001, MaxTokens: 4000, Endpoint: DefaultEndpoint},
				{Name: "second", CostPerToken: 0.000001, MaxTokens: 4000, Endpoint: DefaultEndpoint},
			},
		})
		assert.Equal(t, "first", tied.Select(100, ai.TierFree, ai.OpCategorize, 0).Name)
		assert.Equal(t, "first", tied.Select(100, ai.TierFree, ai.OpSummarize, 0).Name)
	})

	t.Run("unknown tier yields the zero descriptor", func(t *testing.T) {
		picked := c.Select(100, ai.Tier("enterprise"), ai.OpCategorize, 0)
		assert.Empty(t, picked.Name)
	})
}

func TestNewCatalogCopiesInput(t *testing.T) {
	models := []ai.Descriptor{
		{Name: "m", CostPerToken: 0.000001, MaxTokens: 4000},
	}
	c := NewCatalog(map[ai.Tier][]ai.Descriptor{ai.TierFree: models})
	models[0].Name = "mutated"
	assert.Equal(t, "m", c.ModelsFor(ai.TierFree)[0].Name)
}
