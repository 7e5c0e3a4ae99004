// Package gopterarb exposes arbshrink strategies as gopter generators.
//
// Values are generated from gopter's random source and shrunk by the
// strategy's [arbshrink.Tree], so properties written with prop.ForAll get
// prefix shrinking without a hand-written gopter.Shrinker:
//
//	properties := gopter.NewProperties(nil)
//	properties.Property("colors round-trip", prop.ForAll(
//	    func(c sample.RGB) bool { return decode(encode(c)) == c },
//	    gopterarb.Gen(arbshrink.Arb(arbshrink.FromArbitrary[sample.RGB]())),
//	))
//	properties.TestingRun(t)
package gopterarb

import (
	"fmt"
	"math/rand"
	"reflect"

	"github.com/leanovate/gopter"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// DefaultMaxRejects bounds the malformed buffers discarded per generated
// value.
const DefaultMaxRejects = 1000

type options struct {
	maxRejects int
}

// Option configures [Gen].
type Option func(*options)

// WithMaxRejects sets how many malformed buffers one generation may discard
// before it gives up with an empty result.
func WithMaxRejects(n int) Option {
	return func(o *options) {
		o.maxRejects = n
	}
}

// Gen returns a generator drawing s.Size() bytes from the gopter random
// source per attempt.
//
// If the constructor fails fatally or the reject budget runs out, the result
// is empty and labelled with the error, which gopter reports as an
// exhausted or failed generation.
func Gen[V any](s arbshrink.Strategy[V], opts ...Option) gopter.Gen {
	cfg := options{maxRejects: DefaultMaxRejects}
	for _, opt := range opts {
		opt(&cfg)
	}

	resultType := reflect.TypeOf((*V)(nil)).Elem()

	return func(params *gopter.GenParameters) *gopter.GenResult {
		src := &paramSource{rng: params.Rng, maxRejects: cfg.maxRejects}

		tree, err := s.NewTree(src)
		if err != nil {
			result := gopter.NewEmptyResult(resultType)
			result.Labels = append(result.Labels, err.Error())

			return result
		}

		result := gopter.NewGenResult(tree.Current(), shrinker(tree))
		result.ResultType = resultType

		return result
	}
}

// shrinker adapts the stateful tree to gopter's pull-based shrinking.
//
// gopter asks the returned Shrink for candidates until one still fails the
// property, then calls the Shrinker again with that candidate. So when a
// Shrink is asked for another candidate, the previous one passed and has to
// be undone first.
func shrinker[V any](tree *arbshrink.Tree[V]) gopter.Shrinker {
	return func(interface{}) gopter.Shrink {
		pending := false

		return func() (interface{}, bool) {
			if pending {
				tree.Complicate()

				pending = false
			}

			for tree.Next() > 0 {
				if tree.Simplify() {
					pending = true

					return tree.Current(), true
				}
			}

			return nil, false
		}
	}
}

// paramSource feeds [arbshrink.Strategy.NewTree] from gopter's generator
// parameters.
type paramSource struct {
	rng        *rand.Rand
	maxRejects int
	rejects    int
}

func (p *paramSource) Fill(buf []byte) {
	_, _ = p.rng.Read(buf)
}

func (p *paramSource) RejectLocal(reason string) error {
	p.rejects++
	if p.rejects > p.maxRejects {
		return fmt.Errorf("gopterarb: gave up after %d malformed inputs: %s", p.rejects, reason)
	}

	return nil
}
