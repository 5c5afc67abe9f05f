// Package runner runs long-lived components resolved from a container.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/a-peyrard/simpledic"
	"github.com/a-peyrard/simpledic/slices"
	"golang.org/x/sync/errgroup"
)

type (
	// Runnable represents a component that can be run with a context.
	Runnable interface {
		Run(ctx context.Context) error
	}

	// RunnableFunc adapts a function to Runnable.
	RunnableFunc func(ctx context.Context) error
)

func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// WithSyscallKillableContext returns a context canceled on SIGINT or SIGTERM.
func WithSyscallKillableContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// RunAll runs all the provided runnables concurrently and waits for all of them to finish.
//
// This method is blocking and will return an error if any of the runnables returns an error.
// The first failure cancels the context given to the others.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)

	for _, runnable := range runnables {
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}

// Run resolves the given types from the container, and runs them with RunAll. Every type must
// resolve to a Runnable, nothing is run otherwise.
func Run(ctx context.Context, r simpledic.Resolver, types ...simpledic.TypeID) error {
	runnables, err := slices.UnsafeMap(types, func(typ simpledic.TypeID) (Runnable, error) {
		instance, err := r.GetInstance(typ)
		if err != nil {
			return nil, err
		}
		runnable, ok := instance.(Runnable)
		if !ok {
			return nil, fmt.Errorf("%s resolved to %T, which is not a runner.Runnable", typ, instance)
		}
		return runnable, nil
	})
	if err != nil {
		return fmt.Errorf("unable to resolve runnables:\n\t%w", err)
	}

	return RunAll(ctx, runnables...)
}
