// Package bubble implements the depth-first, length-k recursion that,
// given a start node, enumerates candidate isolated SNP bubbles under a
// branching policy and orientation canonicalization, then filters,
// extends, and emits the ones that survive.
package bubble

import (
	"github.com/bubblehunt/snpcaller/src/kmer"
	"github.com/bubblehunt/snpcaller/src/sink"
)

// Bubble is a work record reused across every candidate attempt within
// a single worker's search context. Only on a successful finish is its
// content rendered into two Sequences and handed to the shared sink.
type Bubble struct {
	Begin [2]kmer.Node
	End   [2]kmer.Node

	ExtensionLeft  []byte
	ExtensionRight []byte

	// ClosureLeft/ClosureRight are nil when no unique predecessor or
	// successor exists on that side; a non-nil pointer holds the
	// single ACGT byte otherwise. This replaces the sentinel -1 used
	// by the system this is patterned on.
	ClosureLeft  *byte
	ClosureRight *byte

	DivergenceLeft  int
	DivergenceRight int

	WhereToExtend int
	Score         int
	Index         uint64

	Seq1, Seq2 *sink.Sequence
}

// reset clears a Bubble back to its zero value so the same instance
// can be reused for the next candidate pair without re-allocating.
func (b *Bubble) reset() {
	*b = Bubble{}
}

// maybeNode is an explicit optional node, used in place of a sentinel
// "no previous node" value: a zero kmer.Node is a real, valid node (the
// all-A k-mer packs to zero), so it cannot double as "none".
type maybeNode struct {
	node  kmer.Node
	valid bool
}

func noPrev() maybeNode { return maybeNode{} }

func some(n kmer.Node) maybeNode { return maybeNode{node: n, valid: true} }
