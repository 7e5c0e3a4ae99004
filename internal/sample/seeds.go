package sample

import (
	"encoding/binary"
	"fmt"
)

// SeedBuilder builds buffers that construct chosen sample values, without
// hand-writing raw bytes.
//
// It encodes values in the order the Arbitrary methods consume them. Calls
// chain, and one buffer may hold several values for constructors that read
// more than one.
type SeedBuilder struct {
	data []byte
}

// NewSeedBuilder returns an empty builder.
func NewSeedBuilder() *SeedBuilder {
	return &SeedBuilder{}
}

// Bytes returns a copy of the built buffer.
func (b *SeedBuilder) Bytes() []byte {
	return append([]byte(nil), b.data...)
}

// Raw appends bytes unchanged.
func (b *SeedBuilder) Raw(data ...byte) *SeedBuilder {
	b.data = append(b.data, data...)

	return b
}

// RGB appends a color.
func (b *SeedBuilder) RGB(c RGB) *SeedBuilder {
	return b.Raw(c.R, c.G, c.B)
}

// Frame appends a frame. Panics if the body length does not match the tag.
func (b *SeedBuilder) Frame(f Frame) *SeedBuilder {
	if len(f.Body) != int(f.Tag%FrameBodyMod) {
		panic(fmt.Sprintf("sample: frame tag %d needs %d body bytes, got %d", f.Tag, f.Tag%FrameBodyMod, len(f.Body)))
	}

	return b.Raw(f.Tag).Raw(f.Body...)
}

// Point appends a point.
func (b *SeedBuilder) Point(p Point) *SeedBuilder {
	b.data = binary.LittleEndian.AppendUint64(b.data, uint64(p.X))
	b.data = binary.LittleEndian.AppendUint64(b.data, uint64(p.Y))

	return b
}

// Header appends a well-formed header. Panics if the payload is longer
// than 255 bytes.
func (b *SeedBuilder) Header(h Header) *SeedBuilder {
	if len(h.Payload) > 255 {
		panic(fmt.Sprintf("seed builder: payload too long (%d)", len(h.Payload)))
	}

	b.Raw(HeaderMagic...)
	b.Raw(h.Version, byte(len(h.Payload)))

	return b.Raw(h.Payload...)
}

// BadMagic appends a header prefix that fails the magic check.
func (b *SeedBuilder) BadMagic() *SeedBuilder {
	return b.Raw('X', 'X', 1, 0)
}

// Words appends a word list. Panics on words longer than [MaxWordLen], on
// characters outside a-z and on more than 255 words.
func (b *SeedBuilder) Words(words Words) *SeedBuilder {
	if len(words) > 255 {
		panic(fmt.Sprintf("seed builder: too many words (%d)", len(words)))
	}

	b.Raw(byte(len(words)))

	for _, word := range words {
		if len(word) > MaxWordLen {
			panic(fmt.Sprintf("seed builder: word %q longer than %d", word, MaxWordLen))
		}

		b.Raw(byte(len(word)))

		for i := range len(word) {
			c := word[i]
			if c < 'a' || c > 'z' {
				panic(fmt.Sprintf("seed builder: word %q has non-lowercase byte %q", word, c))
			}

			b.Raw(c - 'a')
		}
	}

	return b
}

// Seed is a named buffer for one kind.
type Seed struct {
	Name string
	Kind string
	Data []byte
}

// CuratedSeeds returns hand-picked buffers covering the interesting shapes of
// every kind, including one that does not construct.
func CuratedSeeds() []Seed {
	return []Seed{
		{Name: "rgb_red", Kind: "rgb", Data: NewSeedBuilder().RGB(RGB{R: 255}).Bytes()},
		// G above R breaks "always red", with trailing bytes to shrink away.
		{Name: "rgb_greenish", Kind: "rgb", Data: NewSeedBuilder().RGB(RGB{R: 10, G: 200, B: 3}).Raw(7, 7, 7).Bytes()},
		{Name: "point_origin", Kind: "point", Data: NewSeedBuilder().Point(Point{}).Bytes()},
		{Name: "point_extremes", Kind: "point", Data: NewSeedBuilder().Point(Point{X: -1 << 63, Y: 1<<63 - 1}).Bytes()},
		{Name: "header_empty", Kind: "header", Data: NewSeedBuilder().Header(Header{Version: 1}).Bytes()},
		{Name: "header_payload", Kind: "header", Data: NewSeedBuilder().Header(Header{Version: 2, Payload: []byte("hello")}).Bytes()},
		{Name: "header_bad_magic", Kind: "header", Data: NewSeedBuilder().BadMagic().Bytes()},
		{Name: "frame_empty", Kind: "frame", Data: NewSeedBuilder().Frame(Frame{Tag: 8, Body: []byte{}}).Bytes()},
		{Name: "frame_body", Kind: "frame", Data: NewSeedBuilder().Frame(Frame{Tag: 3, Body: []byte("abc")}).Raw(0xff).Bytes()},
		{Name: "words_pair", Kind: "words", Data: NewSeedBuilder().Words(Words{"shrink", "me"}).Bytes()},
	}
}
