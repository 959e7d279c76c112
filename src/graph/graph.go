// Package graph defines the read-only capability surface the bubble
// search walks, and provides two implementations: an in-memory map
// built directly from a fixed k-mer/edge set, and a loader for GFA
// files whose segments are k-mers and whose links are the k-1 overlap
// edges of an already-built de Bruijn graph index.
package graph

import (
	"sort"

	"github.com/bubblehunt/snpcaller/src/kmer"
)

// Pair is a pair of nodes reached by the same extending nucleotide from
// two other nodes, i.e. one element of a joint-successor set.
type Pair struct {
	A, B kmer.Node
}

// Graph is the thread-safe, read-only adapter the bubble search, the
// extension unit, and the traversal primitive operate against. All
// methods must be safe for concurrent use by multiple workers; none of
// them ever mutate the graph.
type Graph interface {
	// KmerSize returns k, fixed for the lifetime of the graph.
	KmerSize() int

	// Reverse returns the reverse-complement node.
	Reverse(n kmer.Node) kmer.Node

	// Mutate returns the nodes obtained by replacing the nucleotide at
	// position with each of the four letters; if strictlyGreater is
	// true, only letters with a greater 2-bit code than the current
	// one are returned.
	Mutate(n kmer.Node, position int, strictlyGreater bool) []kmer.Node

	// Successors returns the nodes reachable from n by a single
	// one-nucleotide extension.
	Successors(n kmer.Node) []kmer.Node

	// Predecessors returns the nodes from which n is reachable by a
	// single one-nucleotide extension.
	Predecessors(n kmer.Node) []kmer.Node

	// JointSuccessors returns the pairs (a', b') such that a' is a
	// successor of a, b' is a successor of b, and both extending
	// nucleotides are the same.
	JointSuccessors(a, b kmer.Node) []Pair

	// JointSuccessorEdgeCount returns the number of edges counted by
	// JointSuccessors(a, b) -- used only to test the >=2 threshold in
	// the lax-per-pair branching policy.
	JointSuccessorEdgeCount(a, b kmer.Node) int

	// InDegree and OutDegree report the number of predecessor/successor
	// edges of n.
	InDegree(n kmer.Node) int
	OutDegree(n kmer.Node) int

	// ToString renders the sequence n's handle is currently oriented to,
	// in uppercase ACGT.
	ToString(n kmer.Node) string

	// GetNT returns the 0..3 code of the nucleotide at position i of
	// ToString(n).
	GetNT(n kmer.Node, i int) int

	// AllNodes returns every node of the graph, in a deterministic
	// order. This is ambient bookkeeping the outer driver needs to
	// build its dispatch list; it has no analog in the read-only
	// per-node capability surface above.
	AllNodes() []kmer.Node
}

// successorCandidates returns, for each of the four nucleotides, the
// node reached by shifting n's sequence left by one base and appending
// that nucleotide -- the only nodes that could possibly be successors
// of n in a k-mer graph, whether or not they are actually present.
func successorCandidates(n kmer.Node) [4]kmer.Node {
	seq := []byte(n.String())
	var out [4]kmer.Node
	for c := 0; c < 4; c++ {
		shifted := make([]byte, n.K)
		copy(shifted, seq[1:])
		shifted[n.K-1] = kmer.Letter(uint64(c))
		node, _ := kmer.New(shifted)
		out[c] = node
	}
	return out
}

// predecessorCandidates is the mirror of successorCandidates: the four
// nodes that could precede n.
func predecessorCandidates(n kmer.Node) [4]kmer.Node {
	seq := []byte(n.String())
	var out [4]kmer.Node
	for c := 0; c < 4; c++ {
		shifted := make([]byte, n.K)
		copy(shifted[1:], seq[:n.K-1])
		shifted[0] = kmer.Letter(uint64(c))
		node, _ := kmer.New(shifted)
		out[c] = node
	}
	return out
}

// jointSuccessors filters the four successor candidates of a and b
// down to the pairs where the candidate node on each side is a present
// member of the graph, as tested by the supplied membership predicate.
// This is shared between MapGraph and GFAGraph, both of which reduce
// "is this node present" to a canonical-kmer set lookup.
func jointSuccessors(a, b kmer.Node, present func(kmer.Node) bool) []Pair {
	as := successorCandidates(a)
	bs := successorCandidates(b)
	out := make([]Pair, 0, 4)
	for c := 0; c < 4; c++ {
		if present(as[c]) && present(bs[c]) {
			out = append(out, Pair{A: as[c], B: bs[c]})
		}
	}
	return out
}

func sortedNodes(nodes map[uint64]kmer.Node) []kmer.Node {
	out := make([]kmer.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
