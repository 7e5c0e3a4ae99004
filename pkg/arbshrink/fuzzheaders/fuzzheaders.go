// Package fuzzheaders builds arbshrink constructors on go-fuzz-headers
// consumers, so OSS-Fuzz style harness code can be reused as shrinkable
// strategies.
//
// The consumer reads the unread bytes of the [arbshrink.Unstructured]. It
// only fails when those bytes run out or cannot fill the requested value, so
// every consumer error is reported as [arbshrink.ErrMalformedInput] and the
// strategy retries with fresh bytes.
package fuzzheaders

import (
	"fmt"

	fuzz "github.com/AdaLogics/go-fuzz-headers"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// Func reads a V from a consumer.
type Func[V any] func(c *fuzz.ConsumeFuzzer) (V, error)

// Constructor adapts fn to [arbshrink.Constructor].
//
//	c := fuzzheaders.Constructor(func(c *fuzz.ConsumeFuzzer) (byte, error) {
//		return c.GetByte()
//	})
func Constructor[V any](fn Func[V]) arbshrink.Constructor[V] {
	return arbshrink.ConstructorFunc[V](func(u *arbshrink.Unstructured) (V, error) {
		v, err := fn(fuzz.NewConsumer(u.Rest()))
		if err != nil {
			var zero V

			return zero, fmt.Errorf("%w: %w", arbshrink.ErrMalformedInput, err)
		}

		return v, nil
	})
}

// Struct returns a constructor that fills every field of V with
// [fuzz.ConsumeFuzzer.GenerateStruct].
func Struct[V any]() arbshrink.Constructor[V] {
	return Constructor(func(c *fuzz.ConsumeFuzzer) (V, error) {
		var v V

		err := c.GenerateStruct(&v)

		return v, err
	})
}
