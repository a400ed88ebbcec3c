package driver

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AnalyzeAll runs AnalyzeOne over every spec, dispatched on a worker pool
// bounded by maxConcurrency. A maxConcurrency <= 0 means unbounded. Each
// function's analysis is independent, so a slow or failing function never
// blocks the others; failures surface per-function in FunctionResult.Err
// rather than aborting the whole batch, leaving the exit-code decision
// (non-zero if any function's analysis failed) to the caller via AnyFailed.
//
// Results are returned in the same order as specs, regardless of
// completion order, so callers can zip them back against their input.
func AnalyzeAll(ctx context.Context, specs []FunctionSpec, maxConcurrency int) ([]FunctionResult, error) {
	results := make([]FunctionResult, len(specs))

	g, _ := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}
	for i := range specs {
		i := i
		g.Go(func() error {
			results[i] = AnalyzeOne(specs[i])
			return nil
		})
	}
	// AnalyzeOne never returns an error itself (failures are recorded on
	// the result), so g.Wait() only ever reports pool-internal problems.
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// AnyFailed reports whether any result failed, for callers deciding an
// overall exit code.
func AnyFailed(results []FunctionResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
