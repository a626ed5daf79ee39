// Package batch drives a list of items through a transform in fixed-size
// chunks, yielding control between chunks and reporting progress. It is the
// cooperative scheduling core of a conversion: items are never reordered and
// never processed in parallel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
)

// DefaultSize is the number of items per chunk when Options.Size is zero.
const DefaultSize = 10

// ErrInvalidSize indicates a negative batch size.
var ErrInvalidSize = errors.New("batch size cannot be negative")

// YieldFunc suspends between chunks. It must return promptly; a non-nil
// error aborts the run.
type YieldFunc func(ctx context.Context) error

// ProgressFunc receives (processed, total) after each completed chunk.
type ProgressFunc func(processed, total int)

// Options configures one Process run. Size and Yield are injectable so tests
// stay deterministic without wall-clock timers.
type Options struct {
	Size       int
	Yield      YieldFunc
	OnProgress ProgressFunc
}

// Gosched is the default yield: it checks for cancellation and hands the
// processor to the Go scheduler.
func Gosched(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runtime.Gosched()
	return nil
}

// Process applies transform to every item in input order, one chunk at a
// time. After each chunk, including the final partial one, it reports
// progress (clamped to the total) and yields once. Results come back in
// input order. Empty input returns immediately with no progress report and
// no yield.
func Process[T, R any](ctx context.Context, items []T, transform func(context.Context, T) (R, error), opts Options) ([]R, error) {
	if opts.Size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, opts.Size)
	}
	size := opts.Size
	if size == 0 {
		size = DefaultSize
	}
	yield := opts.Yield
	if yield == nil {
		yield = Gosched
	}

	total := len(items)
	if total == 0 {
		return []R{}, nil
	}

	results := make([]R, 0, total)
	for start := 0; start < total; start += size {
		end := min(start+size, total)

		// Items within a chunk run strictly one after another.
		for _, item := range items[start:end] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := transform(ctx, item)
			if err != nil {
				return nil, fmt.Errorf("processing item %d: %w", len(results), err)
			}
			results = append(results, r)
		}

		if opts.OnProgress != nil {
			opts.OnProgress(min(end, total), total)
		}
		if err := yield(ctx); err != nil {
			return nil, err
		}
	}

	return results, nil
}
