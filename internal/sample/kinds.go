package sample

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// ErrUnknownKind is returned by [Lookup] for names not in [Kinds].
var ErrUnknownKind = errors.New("unknown kind")

// Inspector exposes the read-only cursor state of an [arbshrink.Tree].
type Inspector interface {
	Next() int
	Len() int
	HasPrev() bool
	Input() []byte
}

// Tree is a type-erased [arbshrink.Tree] with its cursor state.
type Tree struct {
	arbshrink.ValueTree[any]
	Inspector
}

// Kind names one sample type and builds trees for it.
type Kind struct {
	Name        string
	Description string

	// Size is the buffer size used when generating without an explicit size.
	Size int

	newTree  func(data []byte) (Tree, error)
	generate func(src arbshrink.Source, size int) (Tree, error)
}

// NewTree builds a tree over data.
func (k Kind) NewTree(data []byte) (Tree, error) {
	return k.newTree(data)
}

// Generate draws size random bytes from src until they construct a value.
// A size <= 0 uses k.Size.
func (k Kind) Generate(src arbshrink.Source, size int) (Tree, error) {
	if size <= 0 {
		size = k.Size
	}

	return k.generate(src, size)
}

func newKind[V any](name, description string, defaultSize int, c arbshrink.Constructor[V]) Kind {
	wrap := func(tree *arbshrink.Tree[V]) Tree {
		return Tree{ValueTree: arbshrink.Erase[V](tree), Inspector: tree}
	}

	return Kind{
		Name:        name,
		Description: description,
		Size:        defaultSize,
		newTree: func(data []byte) (Tree, error) {
			tree, err := arbshrink.NewTree(c, data)
			if err != nil {
				return Tree{}, err
			}

			return wrap(tree), nil
		},
		generate: func(src arbshrink.Source, size int) (Tree, error) {
			tree, err := arbshrink.Sized(c, size).NewTree(src)
			if err != nil {
				return Tree{}, err
			}

			return wrap(tree), nil
		},
	}
}

// Kinds returns all sample kinds sorted by name.
func Kinds() []Kind {
	kinds := []Kind{
		newKind("rgb", "three color channels, one byte each", 8, arbshrink.FromArbitrary[RGB]()),
		newKind("point", "two little-endian int64 coordinates", 24, arbshrink.FromArbitrary[Point]()),
		newKind("header", "magic \"AS\", version byte, length-prefixed payload", 32, arbshrink.FromArbitrary[Header]()),
		newKind("frame", "tag byte and tag%8 body bytes, read via go-fuzz-headers", 16, FrameConstructor()),
		newKind("words", "counted list of lowercase words (max 8 letters)", 48, arbshrink.FromArbitrary[Words]()),
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name < kinds[j].Name })

	return kinds
}

// Lookup returns the kind called name.
func Lookup(name string) (Kind, error) {
	names := make([]string, 0, 5)

	for _, kind := range Kinds() {
		if kind.Name == name {
			return kind, nil
		}

		names = append(names, kind.Name)
	}

	return Kind{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownKind, name, strings.Join(names, ", "))
}
