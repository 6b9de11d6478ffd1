package llmrouter

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Batch chunk sizes by tier.
const (
	freeChunkSize    = 5
	defaultChunkSize = 20
)

// chunkSize returns how many items of a batch are dispatched
// concurrently for a tier.
func chunkSize(tier Tier) int {
	if tier == TierFree {
		return freeChunkSize
	}
	return defaultChunkSize
}

// ProcessBatch processes contents in input order under one
// operation/tier/budget. Items are partitioned into fixed-size chunks
// (5 for the free tier, 20 otherwise); all items of a chunk are
// dispatched concurrently, and after every chunk except the last the
// router pauses for the configured interval as outbound rate limiting.
//
// The output always has exactly len(contents) results in input order.
// One item's failure never aborts or reorders the batch: per-item
// faults, including panics, are captured as failed results at that
// item's position. Cancelling ctx stops scheduling further chunks;
// unscheduled items are marked failed with the context error.
func (r *Router) ProcessBatch(ctx context.Context, contents []string, op Operation, opts ...Option) []ProcessingResult {
	o := ApplyOptions(opts...)
	results := make([]ProcessingResult, len(contents))

	size := chunkSize(o.Tier)
	for start := 0; start < len(contents); start += size {
		end := min(start+size, len(contents))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = r.processSupervised(ctx, contents[idx], op, opts...)
			}(i)
		}
		wg.Wait()

		if end < len(contents) {
			if err := sleepCtx(ctx, r.pause); err != nil {
				for i := end; i < len(contents); i++ {
					results[i] = failure("", err.Error())
				}
				return results
			}
		}
	}

	return results
}

// processSupervised runs one item as an independent unit of work,
// converting a panic into a failed result so a sibling item is never
// cancelled by it.
func (r *Router) processSupervised(ctx context.Context, content string, op Operation, opts ...Option) (res ProcessingResult) {
	defer func() {
		if rec := recover(); rec != nil {
			res = failure("", fmt.Sprintf("panic during processing: %v", rec))
		}
	}()
	return r.Process(ctx, content, op, opts...)
}

// sleepCtx pauses for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
