// Package traversal supplies the unitig/contig extension primitive the
// bubble search's extension unit walks outward with once it has found
// a candidate bubble: a stateful object that follows unbranched graph
// neighborhoods and reports where it itself crossed a branch point.
package traversal

import (
	"github.com/bubblehunt/snpcaller/src/graph"
	"github.com/bubblehunt/snpcaller/src/kmer"
)

// Kind selects how far, and how aggressively, a walk extends past a
// bubble's endpoints.
type Kind int

const (
	// None performs no extension at all.
	None Kind = iota
	// Unitig follows a maximal non-branching path: the walk stops the
	// instant it reaches a node with more than one successor.
	Unitig
	// Contig continues through branch points, recording each one it
	// crosses as a divergence rather than stopping there.
	Contig
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Unitig:
		return "unitig"
	case Contig:
		return "contig"
	default:
		return "unknown"
	}
}

// Direction selects which side of a node the walk follows. Only
// Outgoing is currently implemented; the caller arranges for leftward
// walks by reversing the starting node before calling Traverse, which
// turns "follow predecessors" into "follow successors of the reverse
// complement" -- the same trick the original traversal primitive uses.
type Direction int

// Outgoing walks the graph's successor relation.
const Outgoing Direction = 0

// Divergence records a position, in bases already appended to a walk's
// output, at which the walk itself crossed a branch point -- the
// contig-mode analogue of encountering another bubble mid-extension.
type Divergence struct {
	Position int
}

// Walker is the injected traversal primitive: a stateful object that
// appends nucleotides to out as it walks from start, and reports the
// branch points it crossed along the way.
type Walker interface {
	// dir is reserved for a future Incoming direction; every
	// implementation today only walks Outgoing, and a leftward walk is
	// obtained by reversing start before calling Traverse.
	Traverse(start kmer.Node, dir Direction, out *[]byte) []Divergence
}

// NewWalker builds the Walker appropriate for kind, bound to g and
// gated by t. Kind None has no walker; callers must not invoke
// extension at all in that case.
func NewWalker(kind Kind, g graph.Graph, t *Terminator) Walker {
	switch kind {
	case Unitig:
		return &unitigWalker{g: g, t: t}
	case Contig:
		return &contigWalker{g: g, t: t}
	default:
		return nil
	}
}
