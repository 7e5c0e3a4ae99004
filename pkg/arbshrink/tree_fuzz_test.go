// Property: a Tree behaves like its reference model for any buffer and any
// interleaving of Simplify/Complicate.
//
// The model is the simplest possible rendition of the shrink cursor:
// recompute the constructor at every size and remember one undo value. The
// fuzz input supplies both the buffer and the operation sequence.

package arbshrink_test

import (
	"testing"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

type treeModel struct {
	minLen  int
	curr    int
	prev    int
	hasPrev bool
	next    int
}

func (m *treeModel) simplify() bool {
	if m.next == 0 {
		return false
	}

	m.next--

	if m.next < m.minLen {
		return false
	}

	m.prev, m.hasPrev = m.curr, true
	m.curr = m.next

	return true
}

func (m *treeModel) complicate() bool {
	if !m.hasPrev {
		return false
	}

	m.curr, m.hasPrev = m.prev, false

	return true
}

func FuzzTree_MatchesModel(f *testing.F) {
	f.Add([]byte{}, []byte{})
	f.Add([]byte{0}, []byte{0, 0, 1, 1})
	f.Add(make([]byte, 20), []byte{0, 0, 0, 1, 1, 0, 1})
	f.Add([]byte("abcdefghij"), []byte{0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, buf []byte, ops []byte) {
		minLen := 0
		if len(buf) > 0 {
			minLen = int(buf[0]) % (len(buf) + 1)
		}

		tree, err := arbshrink.NewTree(prefixLen(minLen), append([]byte(nil), buf...))
		if err != nil {
			t.Fatalf("NewTree: %v", err)
		}

		model := &treeModel{minLen: minLen, curr: len(buf), next: len(buf)}

		for i, op := range ops {
			lastNext := tree.Next()

			var got, want bool

			if op&1 == 0 {
				got, want = tree.Simplify(), model.simplify()
			} else {
				got, want = tree.Complicate(), model.complicate()
			}

			if got != want {
				t.Fatalf("op %d (%d): got %v, want %v", i, op&1, got, want)
			}

			if tree.Next() > lastNext {
				t.Fatalf("op %d: cursor grew from %d to %d", i, lastNext, tree.Next())
			}

			if tree.Next() != model.next {
				t.Fatalf("op %d: next=%d, want %d", i, tree.Next(), model.next)
			}

			if tree.Current() != model.curr {
				t.Fatalf("op %d: current=%d, want %d", i, tree.Current(), model.curr)
			}

			if tree.HasPrev() != model.hasPrev {
				t.Fatalf("op %d: hasPrev=%v, want %v", i, tree.HasPrev(), model.hasPrev)
			}

			if len(tree.Input()) != tree.Current() {
				t.Fatalf("op %d: input length %d does not match current %d", i, len(tree.Input()), tree.Current())
			}
		}
	})
}
