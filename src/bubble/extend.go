package bubble

import (
	"github.com/bubblehunt/snpcaller/src/kmer"
	"github.com/bubblehunt/snpcaller/src/traversal"
)

// extend computes the bubble's closure bytes and, when extension is
// enabled, walks outward from the unique neighbor on each side. It
// always returns true; a false return is reserved for future use and
// currently has no case that produces it.
func (sc *SearchContext) extend() bool {
	if sc.cfg.TraversalKind == traversal.None {
		sc.bubble.WhereToExtend = 0
		return true
	}

	predecessors := sc.g.Predecessors(sc.bubble.Begin[0])
	successors := sc.g.Successors(sc.bubble.End[0])

	var closureLeft, closureRight *byte
	if len(predecessors) == 1 {
		b := kmer.Letter(uint64(sc.g.GetNT(predecessors[0], 0)))
		closureLeft = &b
	}
	if len(successors) == 1 {
		k := sc.g.KmerSize()
		b := kmer.Letter(uint64(sc.g.GetNT(successors[0], k-1)))
		closureRight = &b
	}

	// Reset once, before the pair of walks: branch points crossed by
	// the right-hand walk must stay marked for the left-hand walk too,
	// so overlapping left/right extensions don't double back on each
	// other. A fresh call to extend, for the next bubble, resets again.
	sc.terminator.Reset()

	if len(successors) == 1 {
		divs := sc.walker.Traverse(successors[0], traversal.Outgoing, &sc.bubble.ExtensionRight)
		sc.bubble.DivergenceRight = divergencePosition(divs, len(sc.bubble.ExtensionRight))
	} else {
		sc.bubble.DivergenceRight = len(sc.bubble.ExtensionRight)
	}

	if len(predecessors) == 1 {
		divs := sc.walker.Traverse(sc.g.Reverse(predecessors[0]), traversal.Outgoing, &sc.bubble.ExtensionLeft)
		sc.bubble.DivergenceLeft = divergencePosition(divs, len(sc.bubble.ExtensionLeft))
	} else {
		sc.bubble.DivergenceLeft = len(sc.bubble.ExtensionLeft)
	}

	switch {
	case closureLeft == nil && closureRight == nil:
		sc.bubble.WhereToExtend = 0
	case closureLeft != nil && closureRight == nil:
		sc.bubble.WhereToExtend = 1
	case closureLeft == nil && closureRight != nil:
		sc.bubble.WhereToExtend = 2
	default:
		sc.bubble.WhereToExtend = 3
	}
	sc.bubble.ClosureLeft = closureLeft
	sc.bubble.ClosureRight = closureRight

	return true
}

// divergencePosition returns the position of the first divergence the
// walk reported, or fullLength if it reported none.
func divergencePosition(divs []traversal.Divergence, fullLength int) int {
	if len(divs) == 0 {
		return fullLength
	}
	return divs[0].Position
}
