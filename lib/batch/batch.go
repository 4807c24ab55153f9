// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/gbdhash/lib/gbdhash"
)

// Options configures a batch run.
type Options struct {
	// Workers bounds concurrent invocations. Zero or negative means
	// GOMAXPROCS.
	Workers int

	// Pipeline is passed to every invocation.
	Pipeline gbdhash.Options

	Logger *slog.Logger
}

// Item is the outcome for one input path. Exactly one of Result and
// Err is meaningful.
type Item struct {
	Path   string
	Result gbdhash.Result
	Err    error
}

// Outcome is the result of applying a function to one input in Map.
type Outcome[T any] struct {
	Input string
	Value T
	Err   error
}

// PanicError is recorded for an input whose worker panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

// Run computes the fingerprint of every path. The returned slice has
// one Item per path, in input order. The error is non-nil only when ctx
// was cancelled; items not started by then carry the context error.
func Run(ctx context.Context, paths []string, opts Options) ([]Item, error) {
	outcomes, err := Map(ctx, paths, opts.Workers, opts.Logger, func(ctx context.Context, path string) (gbdhash.Result, error) {
		return gbdhash.ComputeFile(ctx, path, opts.Pipeline)
	})
	items := make([]Item, len(outcomes))
	for i, outcome := range outcomes {
		items[i] = Item{Path: outcome.Input, Result: outcome.Value, Err: outcome.Err}
	}
	return items, err
}

// Map applies fn to every input on a pool of at most workers
// goroutines. Errors returned by fn are recorded per input and never
// stop the other inputs.
func Map[T any](ctx context.Context, inputs []string, workers int, logger *slog.Logger, fn func(context.Context, string) (T, error)) ([]Outcome[T], error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	outcomes := make([]Outcome[T], len(inputs))
	for i, input := range inputs {
		outcomes[i].Input = input
	}

	var group errgroup.Group
	group.SetLimit(workers)
	for i := range inputs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(inputs); j++ {
				outcomes[j].Err = err
			}
			break
		}
		outcome := &outcomes[i]
		group.Go(func() error {
			outcome.Value, outcome.Err = call(ctx, outcome.Input, fn)
			if outcome.Err != nil {
				logger.Warn("processing failed", "input", outcome.Input, "error", outcome.Err)
			} else {
				logger.Debug("processed", "input", outcome.Input)
			}
			return nil
		})
	}
	group.Wait()
	return outcomes, ctx.Err()
}

func call[T any](ctx context.Context, input string, fn func(context.Context, string) (T, error)) (value T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			var zero T
			value, err = zero, &PanicError{Value: recovered, Stack: debug.Stack()}
		}
	}()
	return fn(ctx, input)
}
