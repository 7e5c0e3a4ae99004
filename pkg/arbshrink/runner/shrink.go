package runner

import (
	"errors"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// Shrink searches tree for a simpler value that still fails test.
//
// tree.Current() must already fail test. After each successful Simplify the
// candidate is tested: a failure is kept and simplified further, a pass (or
// [ErrReject]) is undone with Complicate before simplifying again. The search
// stops as soon as Simplify or Complicate returns false, or after maxIters
// evaluations of test.
//
// When Shrink returns, tree.Current() is the simplest failing value seen.
func Shrink[V any](tree arbshrink.ValueTree[V], test func(V) error, maxIters int) ShrinkResult {
	var res ShrinkResult

	if maxIters <= 0 || !tree.Simplify() {
		return res
	}

	for {
		if res.Iters >= maxIters {
			// Out of budget with an untested candidate in place.
			tree.Complicate()

			break
		}

		err := test(tree.Current())
		res.Iters++

		if err == nil || errors.Is(err, ErrReject) {
			if !tree.Complicate() || !tree.Simplify() {
				break
			}

			continue
		}

		res.Err = err
		res.Shrinks++

		if !tree.Simplify() {
			break
		}
	}

	return res
}

// ShrinkResult summarizes a [Shrink] search.
type ShrinkResult struct {
	// Err is the error of the last accepted candidate, nil if no simpler
	// failing value was found.
	Err error

	// Shrinks counts accepted simplifications.
	Shrinks int

	// Iters counts evaluations of the test function.
	Iters int
}
