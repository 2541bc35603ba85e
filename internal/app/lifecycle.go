package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/davidbz/matchwise/internal/observability"
)

type stopHook struct {
	name string
	fn   func(context.Context) error
}

// Lifecycle collects shutdown hooks of long-lived resources.
type Lifecycle struct {
	mu    sync.Mutex
	hooks []stopHook
}

// NewLifecycle creates an empty lifecycle (DI constructor).
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// OnStop registers a hook. Hooks run in reverse registration order.
func (l *Lifecycle) OnStop(name string, fn func(context.Context) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, stopHook{name: name, fn: fn})
}

// Stop runs every hook once, even when earlier hooks fail.
func (l *Lifecycle) Stop(ctx context.Context) error {
	l.mu.Lock()
	hooks := l.hooks
	l.hooks = nil
	l.mu.Unlock()

	logger := observability.FromContext(ctx)

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		if err := hook.fn(ctx); err != nil {
			logger.Error("shutdown hook failed",
				observability.String("hook", hook.name),
				observability.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
		}
	}
	return errors.Join(errs...)
}
