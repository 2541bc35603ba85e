package domain

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/matchwise/internal/observability"
)

const (
	statusOK      = "ok"
	statusError   = "error"
	statusTimeout = "timeout"
)

// callProvider runs fn under its own deadline and classifies the failure.
// A deadline hit on the per-call context becomes ErrProviderTimeout; a done
// parent context is returned unchanged so callers can stop iterating.
func callProvider[R any](
	ctx context.Context,
	recorder Recorder,
	kind, provider, op string,
	timeout time.Duration,
	fn func(ctx context.Context) (R, error),
) (R, error) {
	callCtx := observability.WithProvider(ctx, provider)
	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(callCtx, timeout)
	}
	defer cancel()

	started := time.Now()
	res, err := fn(callCtx)
	elapsed := time.Since(started)

	if err == nil {
		recorder.ProviderCall(kind, provider, statusOK, elapsed)
		return res, nil
	}

	var zero R
	if ctx.Err() != nil {
		recorder.ProviderCall(kind, provider, statusError, elapsed)
		return zero, ctx.Err()
	}

	if errors.Is(callCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		recorder.ProviderCall(kind, provider, statusTimeout, elapsed)
		return zero, &ProviderError{Provider: provider, Op: op, Err: ErrProviderTimeout}
	}

	recorder.ProviderCall(kind, provider, statusError, elapsed)

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return zero, providerErr
	}
	return zero, &ProviderError{Provider: provider, Op: op, Err: err}
}
