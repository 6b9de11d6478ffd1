package llmrouter_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	ai "github.com/secondbrainhq/llmrouter"
	"github.com/secondbrainhq/llmrouter/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// traceClient records start and end events per request so tests can
// verify chunk boundaries deterministically.
type traceClient struct {
	mu     sync.Mutex
	events []string
	fn     func(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error)
}

func (c *traceClient) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	c.record("start", req)
	defer c.record("end", req)
	if c.fn != nil {
		return c.fn(ctx, req)
	}
	return &ai.Completion{Content: "ok", TotalTokens: 5}, nil
}

func (c *traceClient) record(kind string, req ai.CompletionRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, kind+":"+itemOf(req.Prompt))
}

// itemOf recovers the batch item embedded in the prompt.
func itemOf(prompt string) string {
	for _, field := range strings.Fields(prompt) {
		if f := strings.Trim(field, `"`); strings.HasPrefix(f, "item-") {
			return f
		}
	}
	return "?"
}

func batchItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = "item-" + strconv.Itoa(i)
	}
	return items
}

func TestProcessBatchPreservesOrderAndLength(t *testing.T) {
	client := &traceClient{fn: func(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
		// Fail the odd items; the payload echoes the item for order checks.
		item := itemOf(req.Prompt)
		n, _ := strconv.Atoi(strings.TrimPrefix(item, "item-"))
		if n%2 == 1 {
			return nil, ai.NewProviderError("API request failed with status 500", 500, nil)
		}
		return &ai.Completion{Content: item, TotalTokens: 5}, nil
	}}
	r := ai.New(client, model.Default(), ai.WithChunkPause(0))

	items := batchItems(7)
	results := r.ProcessBatch(context.Background(), items, ai.OpSummarize, ai.WithTier(ai.TierPro))

	require.Len(t, results, 7)
	for i, res := range results {
		if i%2 == 1 {
			assert.False(t, res.Success, "item %d", i)
			assert.Contains(t, res.Err, "500")
		} else {
			require.True(t, res.Success, "item %d", i)
			assert.Equal(t, items[i], res.Payload.Text())
		}
	}
}

func TestProcessBatchFreeTierChunking(t *testing.T) {
	client := &traceClient{}
	r := ai.New(client, model.Default(), ai.WithChunkPause(time.Millisecond))

	results := r.ProcessBatch(context.Background(), batchItems(12), ai.OpCategorize, ai.WithTier(ai.TierFree))
	require.Len(t, results, 12)

	// Chunks of (5,5,2): every item of a chunk finishes before any item
	// of the next chunk starts.
	chunks := [][]int{{0, 1, 2, 3, 4}, {5, 6, 7, 8, 9}, {10, 11}}
	for ci := 0; ci < len(chunks)-1; ci++ {
		lastEnd := -1
		for _, idx := range chunks[ci] {
			pos := eventPos(client.events, "end:item-"+strconv.Itoa(idx))
			require.GreaterOrEqual(t, pos, 0)
			if pos > lastEnd {
				lastEnd = pos
			}
		}
		for _, idx := range chunks[ci+1] {
			pos := eventPos(client.events, "start:item-"+strconv.Itoa(idx))
			require.GreaterOrEqual(t, pos, 0)
			assert.Greater(t, pos, lastEnd,
				"item %d must not start before chunk %d completed", idx, ci)
		}
	}
}

func eventPos(events []string, want string) int {
	for i, ev := range events {
		if ev == want {
			return i
		}
	}
	return -1
}

func TestProcessBatchProTierSingleChunk(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	client := &traceClient{fn: func(context.Context, ai.CompletionRequest) (*ai.Completion, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
		return &ai.Completion{Content: "ok", TotalTokens: 5}, nil
	}}
	r := ai.New(client, model.Default(), ai.WithChunkPause(0))

	results := r.ProcessBatch(context.Background(), batchItems(12), ai.OpCategorize, ai.WithTier(ai.TierPro))

	require.Len(t, results, 12)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 12, maxInFlight, "a pro-tier batch of 12 runs as one chunk")
}

func TestProcessBatchPanicIsolation(t *testing.T) {
	client := &traceClient{fn: func(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
		if itemOf(req.Prompt) == "item-2" {
			panic("boom")
		}
		return &ai.Completion{Content: "ok", TotalTokens: 5}, nil
	}}
	r := ai.New(client, model.Default(), ai.WithChunkPause(0))

	results := r.ProcessBatch(context.Background(), batchItems(4), ai.OpSummarize)

	require.Len(t, results, 4)
	assert.False(t, results[2].Success)
	assert.Contains(t, results[2].Err, "boom")
	for _, i := range []int{0, 1, 3} {
		assert.True(t, results[i].Success, "item %d must not be affected by a sibling panic", i)
	}
}

func TestProcessBatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &traceClient{fn: func(context.Context, ai.CompletionRequest) (*ai.Completion, error) {
		cancel() // cancel during the first chunk
		return &ai.Completion{Content: "ok", TotalTokens: 5}, nil
	}}
	r := ai.New(client, model.Default(), ai.WithChunkPause(time.Minute))

	results := r.ProcessBatch(ctx, batchItems(7), ai.OpCategorize, ai.WithTier(ai.TierFree))

	require.Len(t, results, 7, "cancellation never shortens the result slice")
	for i := 0; i < 5; i++ {
		assert.True(t, results[i].Success, "in-flight item %d completes", i)
	}
	for i := 5; i < 7; i++ {
		assert.False(t, results[i].Success)
		assert.Contains(t, results[i].Err, "context canceled")
	}
}

func TestProcessBatchEmptyInput(t *testing.T) {
	r := ai.New(&traceClient{}, model.Default(), ai.WithChunkPause(0))
	results := r.ProcessBatch(context.Background(), nil, ai.OpCategorize)
	assert.Empty(t, results)
}
