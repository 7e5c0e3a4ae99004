package arbshrink_test

import (
	"errors"
	"math/rand"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

var errBoom = errors.New("boom")

// rgb is the three single-byte-field record used throughout these tests.
type rgb struct {
	R, G, B uint8
}

func (c *rgb) Arbitrary(u *arbshrink.Unstructured) error {
	raw, err := u.Bytes(3)
	if err != nil {
		return err
	}

	c.R, c.G, c.B = raw[0], raw[1], raw[2]

	return nil
}

// prefixLen constructs the length of its input and rejects inputs shorter
// than minLen.
func prefixLen(minLen int) arbshrink.Constructor[int] {
	return arbshrink.ConstructorFunc[int](func(u *arbshrink.Unstructured) (int, error) {
		if u.Len() < minLen {
			return 0, arbshrink.ErrMalformedInput
		}

		return len(u.Rest()), nil
	})
}

// sumBytes consumes everything and returns the byte sum. Empty input is
// accepted.
var sumBytes = arbshrink.ConstructorFunc[int](func(u *arbshrink.Unstructured) (int, error) {
	total := 0
	for _, b := range u.Rest() {
		total += int(b)
	}

	return total, nil
})

// fakeSource is a deterministic [arbshrink.Source] with a rejection budget.
type fakeSource struct {
	rng        *rand.Rand
	fills      int
	rejects    []string
	maxRejects int
}

func newFakeSource(seed int64, maxRejects int) *fakeSource {
	return &fakeSource{rng: rand.New(rand.NewSource(seed)), maxRejects: maxRejects}
}

func (s *fakeSource) Fill(buf []byte) {
	s.fills++
	_, _ = s.rng.Read(buf)
}

func (s *fakeSource) RejectLocal(reason string) error {
	s.rejects = append(s.rejects, reason)
	if len(s.rejects) > s.maxRejects {
		return errors.New("too many local rejects")
	}

	return nil
}

func seqBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i + 1)
	}

	return out
}
