package arbshrink

import "bytes"

// Constructor builds a value of type V from the front of an [Unstructured]
// consumer.
//
// Implementations must be deterministic and side-effect free: the same bytes
// always yield the same value or the same kind of error. They are called
// repeatedly with shorter prefixes of one buffer while shrinking.
type Constructor[V any] interface {
	Construct(u *Unstructured) (V, error)
}

// ConstructorFunc adapts a plain function to [Constructor].
type ConstructorFunc[V any] func(u *Unstructured) (V, error)

// Construct calls f(u).
func (f ConstructorFunc[V]) Construct(u *Unstructured) (V, error) {
	return f(u)
}

// Arbitrary is implemented by pointer types that can fill themselves from an
// [Unstructured] consumer.
type Arbitrary interface {
	Arbitrary(u *Unstructured) error
}

// Cloner is implemented by values that hold references (slices, maps,
// pointers) and need a deep copy whenever [Tree.Current] hands them out.
type Cloner[V any] interface {
	Clone() V
}

// FromArbitrary returns a [Constructor] for any V whose pointer implements
// [Arbitrary].
//
//	c := arbshrink.FromArbitrary[RGB]()
func FromArbitrary[V any, PV interface {
	*V
	Arbitrary
}]() Constructor[V] {
	return ConstructorFunc[V](func(u *Unstructured) (V, error) {
		var v V

		err := PV(&v).Arbitrary(u)
		if err != nil {
			var zero V

			return zero, err
		}

		return v, nil
	})
}

// Construct runs c over data.
func Construct[V any](c Constructor[V], data []byte) (V, error) {
	return c.Construct(NewUnstructured(data))
}

// clone returns a caller-owned copy of v. Byte slices are copied without
// needing a [Cloner].
func clone[V any](v V) V {
	switch x := any(v).(type) {
	case Cloner[V]:
		return x.Clone()
	case []byte:
		out, _ := any(bytes.Clone(x)).(V)

		return out
	}

	return v
}
