package arbshrink

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by constructors, the [Unstructured] consumer and
// [Strategy.NewTree].
//
// Callers should use [errors.Is] to check error types:
//
//	if errors.Is(err, arbshrink.ErrMalformedInput) {
//	    // retry with different bytes
//	}
var (
	// ErrMalformedInput indicates the bytes cannot be turned into a value.
	//
	// Recovery: draw different bytes. Constructors return this (or an error
	// wrapping it) for buffers that are too short or structurally invalid.
	ErrMalformedInput = errors.New("arbshrink: malformed input")

	// ErrNotEnoughData indicates the consumer ran out of bytes.
	//
	// It wraps [ErrMalformedInput].
	ErrNotEnoughData = fmt.Errorf("%w: not enough data", ErrMalformedInput)

	// ErrEmptyChoice indicates a choice between zero options was requested.
	//
	// This is a programming error in the constructor and is never retried.
	ErrEmptyChoice = errors.New("arbshrink: choose from empty set")

	// ErrRejected indicates the [Source] refused further local rejections.
	ErrRejected = errors.New("arbshrink: too many rejected inputs")
)

// IsMalformed reports whether err is a recoverable construction failure.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// ConstructError is returned by [Strategy.NewTree] when the constructor fails
// with an error that is not [ErrMalformedInput].
type ConstructError struct {
	// Size is the length of the buffer the constructor was given.
	Size int
	Err  error
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("arbshrink: constructing value from %d bytes: %v", e.Size, e.Err)
}

func (e *ConstructError) Unwrap() error {
	return e.Err
}
