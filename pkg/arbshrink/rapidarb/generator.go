// Package rapidarb exposes arbshrink strategies as rapid generators.
//
// rapid owns both the randomness and the shrinking: the generator draws a
// fixed-size byte slice from rapid and runs the strategy's constructor on it,
// so rapid's own byte-level minimization shrinks the constructed value.
package rapidarb

import (
	"pgregory.net/rapid"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// Generator returns a rapid generator for s.
//
// Malformed buffers are skipped and count against rapid's invalid-data
// budget. Any other constructor error fails the test.
func Generator[V any](s arbshrink.Strategy[V]) *rapid.Generator[V] {
	input := rapid.SliceOfN(rapid.Byte(), s.Size(), s.Size())

	return rapid.Custom(func(t *rapid.T) V {
		buf := input.Draw(t, "input")

		v, err := arbshrink.Construct(s.Constructor(), buf)
		if err != nil {
			if arbshrink.IsMalformed(err) {
				t.Skip(err.Error())
			}

			t.Fatalf("%v", &arbshrink.ConstructError{Size: s.Size(), Err: err})
		}

		return v
	})
}
