package llmrouter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		err := NewConfigError("OPENROUTER_API_KEY environment variable not set")
		assert.True(t, IsConfig(err))
		assert.False(t, IsNetwork(err))
		assert.Zero(t, StatusCodeOf(err))
	})

	t.Run("network wraps its cause", func(t *testing.T) {
		cause := errors.New("dial tcp: i/o timeout")
		err := NewNetworkError("request failed", cause)
		assert.True(t, IsNetwork(err))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "i/o timeout")
	})

	t.Run("provider carries the status code", func(t *testing.T) {
		err := NewProviderError("API request failed with status 429", 429, nil)
		assert.True(t, IsProvider(err))
		assert.Equal(t, 429, StatusCodeOf(err))
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("predicates see through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("dispatch: %w", NewProviderError("bad gateway", 502, nil))
		assert.True(t, IsProvider(wrapped))
		assert.Equal(t, 502, StatusCodeOf(wrapped))
	})

	t.Run("plain errors have no category", func(t *testing.T) {
		err := errors.New("plain")
		assert.False(t, IsConfig(err))
		assert.False(t, IsNetwork(err))
		assert.False(t, IsProvider(err))
		assert.Zero(t, StatusCodeOf(err))
	})
}
