package rtin

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Select returns the coarsest set of triangles whose stored error does not
// exceed threshold.
//
// Root A is walked before root B and the right child before the left child,
// so the output order is stable for a given input.
func Select(errs *Errors, threshold float32) []BinID {
	var out []BinID
	out = selectFrom(errs, RootA, threshold, out)
	out = selectFrom(errs, RootB, threshold, out)
	return out
}

// SelectConcurrent walks both roots in parallel and returns the same sequence
// as Select.
func SelectConcurrent(ctx context.Context, errs *Errors, threshold float32) ([]BinID, error) {
	var a, b []BinID

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		a = selectFrom(errs, RootA, threshold, nil)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		b = selectFrom(errs, RootB, threshold, nil)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(a, b...), nil
}

// selectFrom appends the selected triangles of the subtree rooted at id.
// Recursion depth is bounded by the number of levels.
func selectFrom(errs *Errors, id BinID, threshold float32, out []BinID) []BinID {
	count := TriangleCount(errs.Side)

	rightIndex, _ := id.ChildIndices()
	if rightIndex >= count || errs.At(id) <= threshold {
		return append(out, id)
	}

	right, left := id.Children()
	out = selectFrom(errs, right, threshold, out)
	return selectFrom(errs, left, threshold, out)
}
