package arbshrink

import (
	"encoding/binary"
	"fmt"
)

// Unstructured reads bytes sequentially from the front of a byte slice.
//
// Constructors use it to derive values from raw input. Unlike a fuzz byte
// stream it never pads with zeros: a read that needs more bytes than remain
// fails with [ErrNotEnoughData]. This makes shorter prefixes eventually
// unusable, which is what stops prefix shrinking.
//
// Every slice returned by Unstructured is a copy, so constructed values never
// alias the underlying buffer.
type Unstructured struct {
	bytes []byte
	pos   int
}

// NewUnstructured creates a consumer over b. b is not modified.
func NewUnstructured(b []byte) *Unstructured {
	return &Unstructured{bytes: b}
}

// Len returns the number of unread bytes.
func (u *Unstructured) Len() int {
	return len(u.bytes) - u.pos
}

// Used returns the number of bytes consumed so far.
func (u *Unstructured) Used() int {
	return u.pos
}

// IsEmpty reports whether all bytes have been consumed.
func (u *Unstructured) IsEmpty() bool {
	return u.pos >= len(u.bytes)
}

// Byte returns the next byte.
func (u *Unstructured) Byte() (byte, error) {
	if u.pos >= len(u.bytes) {
		return 0, ErrNotEnoughData
	}

	v := u.bytes[u.pos]
	u.pos++

	return v, nil
}

// Bytes returns a copy of the next n bytes.
func (u *Unstructured) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("arbshrink: negative byte count %d", n)
	}

	if n > u.Len() {
		return nil, ErrNotEnoughData
	}

	out := make([]byte, n)
	copy(out, u.bytes[u.pos:u.pos+n])
	u.pos += n

	return out, nil
}

// Bool returns a boolean derived from the low bit of the next byte.
func (u *Unstructured) Bool() (bool, error) {
	b, err := u.Byte()
	if err != nil {
		return false, err
	}

	return b&1 == 1, nil
}

// Uint16 reads 2 bytes as a little-endian uint16.
func (u *Unstructured) Uint16() (uint16, error) {
	raw, err := u.take(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(raw), nil
}

// Uint32 reads 4 bytes as a little-endian uint32.
func (u *Unstructured) Uint32() (uint32, error) {
	raw, err := u.take(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(raw), nil
}

// Uint64 reads 8 bytes as a little-endian uint64.
func (u *Unstructured) Uint64() (uint64, error) {
	raw, err := u.take(8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(raw), nil
}

// Int64 reads 8 bytes as a little-endian int64.
func (u *Unstructured) Int64() (int64, error) {
	raw, err := u.take(8)
	if err != nil {
		return 0, err
	}

	return getInt64LE(raw), nil
}

// IntRange returns an int in [lo, hi].
//
// It consumes only as many bytes as the width of the range needs. A range
// with lo > hi is a constructor bug and returns a non-malformed error.
func (u *Unstructured) IntRange(lo, hi int) (int, error) {
	if lo > hi {
		return 0, fmt.Errorf("arbshrink: invalid range [%d, %d]", lo, hi)
	}

	span := uint64(hi) - uint64(lo)
	if span == 0 {
		return lo, nil
	}

	var acc uint64

	for width := span; width > 0; width >>= 8 {
		b, err := u.Byte()
		if err != nil {
			return 0, err
		}

		acc = acc<<8 | uint64(b)
	}

	if span < ^uint64(0) {
		acc %= span + 1
	}

	return lo + int(acc), nil
}

// Choose returns an index in [0, n).
func (u *Unstructured) Choose(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyChoice
	}

	return u.IntRange(0, n-1)
}

// ArbitraryLen returns a collection length for elements of elemSize bytes.
//
// The length is bounded by how many such elements the remaining bytes can
// still hold, so shrinking the buffer shrinks collections too.
func (u *Unstructured) ArbitraryLen(elemSize int) (int, error) {
	if elemSize <= 0 {
		elemSize = 1
	}

	b, err := u.Byte()
	if err != nil {
		return 0, err
	}

	limit := u.Len() / elemSize
	if limit == 0 {
		return 0, nil
	}

	return int(b) % (limit + 1), nil
}

// String returns a lowercase ASCII string of length 0..maxLen.
func (u *Unstructured) String(maxLen int) (string, error) {
	if maxLen <= 0 {
		return "", nil
	}

	length, err := u.IntRange(0, maxLen)
	if err != nil {
		return "", err
	}

	raw, err := u.Bytes(length)
	if err != nil {
		return "", err
	}

	for i := range raw {
		raw[i] = 'a' + (raw[i] % 26)
	}

	return string(raw), nil
}

// Rest returns a copy of all unread bytes and consumes them.
func (u *Unstructured) Rest() []byte {
	out := make([]byte, u.Len())
	copy(out, u.bytes[u.pos:])
	u.pos = len(u.bytes)

	return out
}

// take returns the next n bytes without copying. Callers must not retain it.
func (u *Unstructured) take(n int) ([]byte, error) {
	if n > u.Len() {
		return nil, ErrNotEnoughData
	}

	raw := u.bytes[u.pos : u.pos+n]
	u.pos += n

	return raw, nil
}

func getInt64LE(buf []byte) int64 {
	_ = buf[7] // BCE hint

	return int64(buf[0]) |
		int64(buf[1])<<8 |
		int64(buf[2])<<16 |
		int64(buf[3])<<24 |
		int64(buf[4])<<32 |
		int64(buf[5])<<40 |
		int64(buf[6])<<48 |
		int64(buf[7])<<56
}
