// Package sample holds small byte-driven value types used by tests, examples
// and the arbtrace tool.
//
// Every type reads its fields front to back from an [arbshrink.Unstructured]
// consumer, so shorter buffers give either the same value or a malformed
// input. [SeedBuilder] encodes wanted values back into buffers.
package sample

import (
	"bytes"
	"fmt"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// RGB is a color with one byte per channel.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Arbitrary reads R, G and B from one byte each.
func (c *RGB) Arbitrary(u *arbshrink.Unstructured) error {
	for _, channel := range []*uint8{&c.R, &c.G, &c.B} {
		b, err := u.Byte()
		if err != nil {
			return err
		}

		*channel = b
	}

	return nil
}

// Point is a pair of signed coordinates.
type Point struct {
	X int64
	Y int64
}

// Arbitrary reads X and Y as little-endian int64 values.
func (p *Point) Arbitrary(u *arbshrink.Unstructured) error {
	x, err := u.Int64()
	if err != nil {
		return err
	}

	y, err := u.Int64()
	if err != nil {
		return err
	}

	p.X, p.Y = x, y

	return nil
}

// HeaderMagic starts every encoded [Header].
var HeaderMagic = []byte("AS")

// Header is a tiny framed record: magic, version, length-prefixed payload.
type Header struct {
	Version uint8
	Payload []byte
}

// Arbitrary reads a header. A wrong magic is malformed input.
func (h *Header) Arbitrary(u *arbshrink.Unstructured) error {
	magic, err := u.Bytes(len(HeaderMagic))
	if err != nil {
		return err
	}

	if !bytes.Equal(magic, HeaderMagic) {
		return fmt.Errorf("%w: bad magic %q", arbshrink.ErrMalformedInput, magic)
	}

	version, err := u.Byte()
	if err != nil {
		return err
	}

	n, err := u.ArbitraryLen(1)
	if err != nil {
		return err
	}

	payload, err := u.Bytes(n)
	if err != nil {
		return err
	}

	h.Version, h.Payload = version, payload

	return nil
}

// Clone returns a deep copy.
func (h Header) Clone() Header {
	h.Payload = bytes.Clone(h.Payload)

	return h
}

// MaxWordLen bounds each word in [Words].
const MaxWordLen = 8

// Words is a list of short lowercase words.
type Words []string

// Arbitrary reads a word count, then each word as a length and letters.
func (w *Words) Arbitrary(u *arbshrink.Unstructured) error {
	n, err := u.ArbitraryLen(1)
	if err != nil {
		return err
	}

	words := make(Words, 0, n)

	for range n {
		word, err := u.String(MaxWordLen)
		if err != nil {
			return err
		}

		words = append(words, word)
	}

	*w = words

	return nil
}

// Clone returns a copy with its own backing array.
func (w Words) Clone() Words {
	if w == nil {
		return nil
	}

	out := make(Words, len(w))
	copy(out, w)

	return out
}
