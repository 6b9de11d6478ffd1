package llmrouter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	const content = `Great product launch today! "quotes" and <tags> stay as-is`

	t.Run("embeds content verbatim for every operation", func(t *testing.T) {
		for _, op := range []Operation{OpCategorize, OpSummarize, OpExtractInsights, OpGenerateTags} {
			p := BuildPrompt(content, op)
			assert.Contains(t, p, content, "operation %s", op)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, BuildPrompt(content, OpCategorize), BuildPrompt(content, OpCategorize))
	})

	t.Run("structured operations request a JSON response", func(t *testing.T) {
		for _, op := range []Operation{OpCategorize, OpExtractInsights, OpGenerateTags} {
			assert.Contains(t, BuildPrompt(content, op), "Respond in JSON format", "operation %s", op)
		}
		assert.NotContains(t, BuildPrompt(content, OpSummarize), "Respond in JSON format")
	})

	t.Run("templates name their expected keys", func(t *testing.T) {
		assert.Contains(t, BuildPrompt(content, OpCategorize), `"category"`)
		assert.Contains(t, BuildPrompt(content, OpExtractInsights), `"actionable_items"`)
		assert.Contains(t, BuildPrompt(content, OpGenerateTags), `"primary_topic"`)
	})

	t.Run("summarize asks for a short summary", func(t *testing.T) {
		p := BuildPrompt(content, OpSummarize)
		assert.True(t, strings.Contains(p, "1-2 sentences"))
	})
}
