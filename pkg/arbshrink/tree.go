package arbshrink

// ValueTree is the shrink-search cursor a host test loop drives.
//
// After a property fails on Current, the host calls Simplify to get a simpler
// candidate. If the property passes on that candidate, Complicate steps back.
type ValueTree[V any] interface {
	// Current returns the current candidate value.
	Current() V

	// Simplify moves to a simpler candidate. Returns false if none was
	// produced; the current value is unchanged in that case.
	Simplify() bool

	// Complicate undoes the most recent successful Simplify. Returns false
	// if there is nothing to undo.
	Complicate() bool
}

// Tree shrinks a value by re-running its constructor on shrinking prefixes of
// one fixed buffer.
//
// The buffer is never modified. Only the prefix length handed to the
// constructor changes, and it only ever decreases. Exactly one previous value
// is kept, so one successful [Tree.Simplify] can be undone by one
// [Tree.Complicate].
//
// A Tree is not safe for concurrent use.
type Tree[V any] struct {
	constructor Constructor[V]
	bytes       []byte

	curr    V
	currLen int

	prev    V
	prevLen int
	hasPrev bool

	// next is the last prefix length tried. Only decreases.
	next int
}

var _ ValueTree[struct{}] = (*Tree[struct{}])(nil)

// NewTree builds a tree over bytes, constructing the initial value from the
// whole buffer.
//
// The tree takes ownership of bytes; callers must not modify it afterwards.
// Constructor errors are returned unchanged.
func NewTree[V any](c Constructor[V], bytes []byte) (*Tree[V], error) {
	if c == nil {
		panic("constructor is nil")
	}

	next := len(bytes)

	curr, err := Construct(c, bytes[:next])
	if err != nil {
		return nil, err
	}

	return &Tree[V]{
		constructor: c,
		bytes:       bytes,
		curr:        curr,
		currLen:     next,
		next:        next,
	}, nil
}

// Current returns a copy of the current value.
//
// Values implementing [Cloner] and plain []byte values are copied. Other
// reference-holding values are shared with the tree.
func (t *Tree[V]) Current() V {
	return clone(t.curr)
}

// Simplify shortens the prefix by one byte and reconstructs.
//
// On success the old current value becomes the undo slot (replacing any value
// already there) and Simplify returns true. If the constructor fails, for any
// reason, Simplify returns false and leaves the values alone. The shorter
// prefix length is kept either way, so the next call tries one byte less.
// Once the prefix is empty Simplify always returns false.
func (t *Tree[V]) Simplify() bool {
	if t.next == 0 {
		return false
	}

	t.next--

	simpler, err := Construct(t.constructor, t.bytes[:t.next])
	if err != nil {
		return false
	}

	t.prev, t.prevLen, t.hasPrev = t.curr, t.currLen, true
	t.curr, t.currLen = simpler, t.next

	return true
}

// Complicate restores the value replaced by the last successful Simplify.
//
// Only one step is remembered: a second Complicate without a successful
// Simplify in between returns false. The prefix cursor does not move back.
func (t *Tree[V]) Complicate() bool {
	if !t.hasPrev {
		return false
	}

	var zero V

	t.curr, t.currLen = t.prev, t.prevLen
	t.prev, t.prevLen, t.hasPrev = zero, 0, false

	return true
}

// Next returns the prefix length the tree has shrunk to. The next Simplify
// tries Next()-1 bytes.
func (t *Tree[V]) Next() int {
	return t.next
}

// Len returns the length of the full buffer.
func (t *Tree[V]) Len() int {
	return len(t.bytes)
}

// HasPrev reports whether [Tree.Complicate] would succeed.
func (t *Tree[V]) HasPrev() bool {
	return t.hasPrev
}

// Input returns a copy of the buffer prefix that produced Current.
//
// Feeding it to [NewTree] with the same constructor reproduces Current.
func (t *Tree[V]) Input() []byte {
	out := make([]byte, t.currLen)
	copy(out, t.bytes[:t.currLen])

	return out
}

// Erase hides the value type of t, for tools that handle trees of many
// types through one interface.
func Erase[V any](t ValueTree[V]) ValueTree[any] {
	return erased[V]{t}
}

type erased[V any] struct {
	tree ValueTree[V]
}

func (e erased[V]) Current() any     { return e.tree.Current() }
func (e erased[V]) Simplify() bool   { return e.tree.Simplify() }
func (e erased[V]) Complicate() bool { return e.tree.Complicate() }
