// Package workpool runs per-item work on a bounded ants pool and reports one
// result per item, so partial failures are visible item by item instead of
// failing a whole chunk.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// ErrSkipped marks items never started because the context was done.
var ErrSkipped = errors.New("item skipped")

// Options bounds a run.
type Options struct {
	// Workers is the number of items processed concurrently.
	Workers int
	// ChunkSize groups items; the next chunk starts after the previous one drains.
	// Zero puts every item in a single chunk.
	ChunkSize int
	// ChunkPause is slept between chunks as coarse provider rate limiting.
	ChunkPause time.Duration
}

// Result is the outcome for the item at Index.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// Func processes one item.
type Func[T, R any] func(ctx context.Context, index int, item T) (R, error)

// Run starts processing and streams results as items complete. The channel is
// closed once every item has produced exactly one result.
func Run[T, R any](ctx context.Context, items []T, opts Options, fn Func[T, R]) (<-chan Result[R], error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	chunkSize := opts.ChunkSize
	if chunkSize < 1 {
		chunkSize = len(items)
	}

	out := make(chan Result[R], len(items))
	if len(items) == 0 {
		close(out)
		return out, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	go func() {
		defer close(out)
		defer pool.Release()

		for start := 0; start < len(items); start += chunkSize {
			if start > 0 && ctx.Err() == nil {
				pause(ctx, opts.ChunkPause)
			}

			end := min(start+chunkSize, len(items))

			var wg sync.WaitGroup
			for i := start; i < end; i++ {
				if ctxErr := ctx.Err(); ctxErr != nil {
					out <- Result[R]{Index: i, Err: fmt.Errorf("%w: %w", ErrSkipped, ctxErr)}
					continue
				}

				idx, item := i, items[i]
				wg.Add(1)
				submitErr := pool.Submit(func() {
					defer wg.Done()
					// Submit blocks until a worker frees up, so the context may be done by now.
					if ctxErr := ctx.Err(); ctxErr != nil {
						out <- Result[R]{Index: idx, Err: fmt.Errorf("%w: %w", ErrSkipped, ctxErr)}
						return
					}
					out <- invoke(ctx, idx, item, fn)
				})
				if submitErr != nil {
					wg.Done()
					out <- Result[R]{Index: idx, Err: fmt.Errorf("failed to submit item: %w", submitErr)}
				}
			}
			wg.Wait()
		}
	}()

	return out, nil
}

// Map runs every item and returns results in input order.
func Map[T, R any](ctx context.Context, items []T, opts Options, fn Func[T, R]) ([]Result[R], error) {
	stream, err := Run(ctx, items, opts, fn)
	if err != nil {
		return nil, err
	}

	results := make([]Result[R], len(items))
	for res := range stream {
		results[res.Index] = res
	}
	return results, nil
}

func invoke[T, R any](ctx context.Context, index int, item T, fn Func[T, R]) (res Result[R]) {
	res.Index = index
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic processing item %d: %v", index, r)
		}
	}()
	res.Value, res.Err = fn(ctx, index, item)
	return res
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
