// Package openrouter implements llmrouter.ChatClient over the OpenAI
// SDK pointed at an OpenAI-compatible chat-completions endpoint.
// OpenRouter is the default; any compatible base URL works.
package openrouter

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/secondbrainhq/llmrouter"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultTitle is the client-identifying header value sent with every
// request. OpenRouter uses it for app attribution.
const DefaultTitle = "Second Brain"

// Client wraps the OpenAI SDK to implement ai.ChatClient.
type Client struct {
	client  *openai.Client
	baseURL string
	title   string
	limiter *rate.Limiter
}

// New creates a client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		title:   DefaultTitle,
	}
	for _, opt := range opts {
		opt(c)
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithHeader("X-Title", c.title),
	)
	c.client = &client
	return c
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL points the client at an alternate OpenAI-compatible
// endpoint (e.g. Moonshot, or the provider's own API).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTitle overrides the client-identifying header value.
func WithTitle(title string) ClientOption {
	return func(c *Client) {
		c.title = title
	}
}

// WithRateLimit caps outbound requests at rps per second with the
// given burst. No cap is applied by default.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// Complete sends one prompt and returns the first choice's text with
// the provider-reported token usage.
func (c *Client) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, ai.NewNetworkError("rate limit wait cancelled", err)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ai.NewProviderError("no response from model", 0, nil)
	}

	return &ai.Completion{
		Content:     resp.Choices[0].Message.Content,
		TotalTokens: int(resp.Usage.TotalTokens),
	}, nil
}

var _ ai.ChatClient = (*Client)(nil)
