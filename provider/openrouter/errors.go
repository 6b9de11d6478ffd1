package openrouter

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	ai "github.com/secondbrainhq/llmrouter"
)

// wrapError converts an OpenAI SDK error into the router's taxonomy.
// API errors with a status code become provider errors; everything
// else (connection, DNS, timeout) becomes a network error.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := fmt.Sprintf("API request failed with status %d", apiErr.StatusCode)
		return ai.NewProviderError(msg, apiErr.StatusCode, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewNetworkError("request timed out", err)
	}

	return ai.NewNetworkError("request failed", err)
}
