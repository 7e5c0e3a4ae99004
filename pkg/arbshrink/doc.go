// Package arbshrink turns byte-driven value constructors into shrinking
// property-test strategies.
//
// A constructor reads its value from the front of an [Unstructured] byte
// consumer, the same way a fuzz target decodes its input. [Strategy] feeds
// it fresh random bytes; the resulting [Tree] shrinks a failing value by
// re-running the constructor on ever shorter prefixes of the same buffer.
//
// # Basic Usage
//
//	type RGB struct{ R, G, B uint8 }
//
//	func (c *RGB) Arbitrary(u *arbshrink.Unstructured) error {
//	    b, err := u.Bytes(3)
//	    if err != nil {
//	        return err
//	    }
//	    c.R, c.G, c.B = b[0], b[1], b[2]
//	    return nil
//	}
//
//	strategy := arbshrink.Arb(arbshrink.FromArbitrary[RGB]())
//	tree, err := strategy.NewTree(source)
//
//	// Host shrink loop
//	for tree.Simplify() {
//	    if !fails(tree.Current()) && !tree.Complicate() {
//	        break
//	    }
//	}
//
// # Shrinking
//
// [Tree.Simplify] never changes buffer contents. It only shortens the prefix
// handed to the constructor, one byte per call, and the cursor never moves
// back up. [Tree.Complicate] undoes exactly one successful simplification.
//
// # Error Handling
//
// Constructors report insufficient or invalid bytes with errors matching
// [ErrMalformedInput]. At generation time these are retried with new bytes
// (bounded by the [Source]); during shrinking they mean "this size does not
// work". Any other error is fatal at generation time and surfaces as a
// [*ConstructError].
//
// # Concurrency
//
// [Strategy] is immutable and safe for concurrent use. A [Tree] is driven by
// one goroutine at a time and has no internal locking.
package arbshrink
