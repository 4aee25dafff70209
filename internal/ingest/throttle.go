package ingest

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/artcadia/market-sync/internal/adapter"
)

// Policy decides the pause applied before processing chunk index i.
// Policies only see chunk positions, never chunk contents, so one policy
// serves any provider.
type Policy interface {
	BeforeChunk(index int) time.Duration
}

// NonePolicy never pauses
type NonePolicy struct{}

// BeforeChunk returns zero for every chunk
func (NonePolicy) BeforeChunk(int) time.Duration { return 0 }

// ChunkPolicy sleeps a fixed duration before every chunk after the first.
// This matches providers with fixed per-minute request caps: no pause
// before the first chunk and none after the last.
type ChunkPolicy struct {
	Delay time.Duration
}

// BeforeChunk returns the configured delay, except for the first chunk
func (p ChunkPolicy) BeforeChunk(index int) time.Duration {
	if index == 0 {
		return 0
	}
	return p.Delay
}

// RatePolicy paces chunks through a token bucket, for providers that
// publish a sustained request rate rather than a window cap
type RatePolicy struct {
	Limiter *rate.Limiter
}

// BeforeChunk reserves a token and returns how long to wait for it
func (p RatePolicy) BeforeChunk(int) time.Duration {
	return p.Limiter.Reserve().Delay()
}

// InChunks processes keys in fixed-size chunks, pausing per the policy
// before each chunk. Returns false if the context was canceled before all
// chunks were processed.
func InChunks[T any](ctx context.Context, keys []T, chunkSize int, policy Policy, clock adapter.Clock, fn func(ctx context.Context, chunk []T)) bool {
	if len(keys) == 0 {
		return true
	}
	if chunkSize <= 0 {
		chunkSize = len(keys)
	}

	index := 0
	for start := 0; start < len(keys); start += chunkSize {
		if delay := policy.BeforeChunk(index); delay > 0 {
			select {
			case <-clock.After(delay):
			case <-ctx.Done():
				return false
			}
		}
		if ctx.Err() != nil {
			return false
		}

		end := min(start+chunkSize, len(keys))
		fn(ctx, keys[start:end])
		index++
	}

	return true
}
