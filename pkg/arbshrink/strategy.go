package arbshrink

import "fmt"

// DefaultSize is the number of random bytes [Arb] draws per attempt.
const DefaultSize = 256

// Source supplies randomness and rejection bookkeeping to [Strategy.NewTree].
//
// It is provided by the host test runner, which owns any synchronization.
type Source interface {
	// Fill fills buf with random bytes.
	Fill(buf []byte)

	// RejectLocal records that the current attempt was discarded for reason.
	// It returns an error only when the host's rejection budget is exhausted.
	RejectLocal(reason string) error
}

// Strategy generates [Tree] values from random buffers of a fixed size.
//
// A Strategy is an immutable value and safe for concurrent use.
type Strategy[V any] struct {
	constructor Constructor[V]
	size        int
}

// Arb returns a strategy drawing [DefaultSize] bytes per attempt.
func Arb[V any](c Constructor[V]) Strategy[V] {
	return Sized(c, DefaultSize)
}

// Sized returns a strategy drawing size bytes per attempt.
// Panics if c is nil or size is negative.
func Sized[V any](c Constructor[V], size int) Strategy[V] {
	if c == nil {
		panic("constructor is nil")
	}

	if size < 0 {
		panic(fmt.Sprintf("size must be >= 0, got %d", size))
	}

	return Strategy[V]{constructor: c, size: size}
}

// Size returns the number of bytes drawn per attempt.
func (s Strategy[V]) Size() int {
	return s.size
}

// Constructor returns the strategy's constructor.
func (s Strategy[V]) Constructor() Constructor[V] {
	return s.constructor
}

// NewTree draws buffers from src until the constructor accepts one.
//
// Malformed buffers are reported to src via [Source.RejectLocal] and retried
// with fresh bytes; when src refuses, the returned error wraps [ErrRejected]
// and the source's error. Any other constructor error is returned
// immediately as a [*ConstructError].
func (s Strategy[V]) NewTree(src Source) (*Tree[V], error) {
	if s.constructor == nil {
		panic("zero Strategy: use Arb or Sized")
	}

	for {
		buf := make([]byte, s.size)
		src.Fill(buf)

		tree, err := NewTree(s.constructor, buf)
		if err == nil {
			return tree, nil
		}

		if !IsMalformed(err) {
			return nil, &ConstructError{Size: s.size, Err: err}
		}

		rejectErr := src.RejectLocal(err.Error())
		if rejectErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrRejected, rejectErr)
		}
	}
}
