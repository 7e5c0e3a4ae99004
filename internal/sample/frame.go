package sample

import (
	"bytes"

	fuzz "github.com/AdaLogics/go-fuzz-headers"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
	"github.com/calvinalkan/arbshrink/pkg/arbshrink/fuzzheaders"
)

// FrameBodyMod bounds a frame body: it holds Tag % FrameBodyMod bytes.
const FrameBodyMod = 8

// Frame is a tagged message whose body length follows from the tag.
type Frame struct {
	Tag  byte
	Body []byte
}

// Clone returns a copy with its own body.
func (f Frame) Clone() Frame {
	return Frame{Tag: f.Tag, Body: bytes.Clone(f.Body)}
}

// FrameConstructor reads a frame through a go-fuzz-headers consumer.
func FrameConstructor() arbshrink.Constructor[Frame] {
	return fuzzheaders.Constructor(func(c *fuzz.ConsumeFuzzer) (Frame, error) {
		tag, err := c.GetByte()
		if err != nil {
			return Frame{}, err
		}

		frame := Frame{Tag: tag, Body: []byte{}}

		n := int(tag % FrameBodyMod)
		if n == 0 {
			return frame, nil
		}

		frame.Body, err = c.GetNBytes(n)
		if err != nil {
			return Frame{}, err
		}

		return frame, nil
	})
}
