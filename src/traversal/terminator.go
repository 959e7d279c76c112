package traversal

import "github.com/bubblehunt/snpcaller/src/kmer"

// Terminator gates a walk at branching nodes it has already crossed.
// A single bubble's extension makes two calls to the same walker, one
// per side; Reset is called once before that pair, not between them,
// so a branch point legitimately crossed on one side stays marked and
// a left/right extension that loops back onto it still stops. The next
// bubble's extension starts with its own Reset.
type Terminator struct {
	seen map[uint64]bool
}

// NewTerminator returns a Terminator with no recorded branch points.
func NewTerminator() *Terminator {
	return &Terminator{seen: make(map[uint64]bool)}
}

// Reset clears every recorded branch point, ready for the next walk.
func (t *Terminator) Reset() {
	t.seen = make(map[uint64]bool)
}

// markAndCheck records n if it is a branching node (degree-wise) and
// reports whether it had already been recorded -- true means the walk
// has looped back onto a branch point it already crossed and must stop.
func (t *Terminator) markAndCheck(n kmer.Node, branching bool) bool {
	if t.seen[n.Value] {
		return true
	}
	if branching {
		t.seen[n.Value] = true
	}
	return false
}
