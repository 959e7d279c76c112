package graph

import (
	"fmt"

	"github.com/bubblehunt/snpcaller/src/kmer"
)

// MapGraph is an in-memory Graph backed by nothing more than the set
// of canonical k-mer values that are members of the graph. In a de
// Bruijn graph, edges are implied entirely by k-1 base overlap between
// present nodes -- there is no possibility of a "spurious" edge, so no
// separate adjacency list is needed: Successors/Predecessors/
// JointSuccessors all derive their answer structurally and simply test
// candidate neighbors for set membership.
type MapGraph struct {
	k     int
	nodes map[uint64]kmer.Node
}

// NewMapGraph builds an empty graph with the given k-mer size.
func NewMapGraph(k int) *MapGraph {
	return &MapGraph{k: k, nodes: make(map[uint64]kmer.Node)}
}

// AddKmer inserts the node for seq (which must have length k) into the
// graph's node set.
func (g *MapGraph) AddKmer(seq []byte) error {
	if len(seq) != g.k {
		return fmt.Errorf("graph: sequence length %d does not match k-mer size %d", len(seq), g.k)
	}
	n, err := kmer.New(seq)
	if err != nil {
		return err
	}
	g.nodes[n.Value] = n
	return nil
}

// AddPath walks a linear sequence with a sliding k-window and adds
// every resulting k-mer, linking each to the next by construction (the
// consecutive windows necessarily overlap by k-1 bases). This is the
// convenience constructor tests build their fixture graphs with.
func (g *MapGraph) AddPath(seq []byte) error {
	if len(seq) < g.k {
		return fmt.Errorf("graph: sequence of length %d too short for k-mer size %d", len(seq), g.k)
	}
	for i := 0; i+g.k <= len(seq); i++ {
		if err := g.AddKmer(seq[i : i+g.k]); err != nil {
			return err
		}
	}
	return nil
}

func (g *MapGraph) has(n kmer.Node) bool {
	_, ok := g.nodes[n.Value]
	return ok
}

// KmerSize returns k.
func (g *MapGraph) KmerSize() int { return g.k }

// Reverse returns the reverse-complement node.
func (g *MapGraph) Reverse(n kmer.Node) kmer.Node { return kmer.Reverse(n) }

// Mutate returns the nodes obtained from n by substitution at position.
func (g *MapGraph) Mutate(n kmer.Node, position int, strictlyGreater bool) []kmer.Node {
	return n.Mutate(position, strictlyGreater)
}

// Successors returns the present nodes reachable from n by a single
// one-nucleotide extension.
func (g *MapGraph) Successors(n kmer.Node) []kmer.Node {
	cands := successorCandidates(n)
	out := make([]kmer.Node, 0, 4)
	for _, c := range cands {
		if g.has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Predecessors returns the present nodes from which n is reachable by
// a single one-nucleotide extension.
func (g *MapGraph) Predecessors(n kmer.Node) []kmer.Node {
	cands := predecessorCandidates(n)
	out := make([]kmer.Node, 0, 4)
	for _, c := range cands {
		if g.has(c) {
			out = append(out, c)
		}
	}
	return out
}

// JointSuccessors returns the present joint-successor pairs of a and b.
func (g *MapGraph) JointSuccessors(a, b kmer.Node) []Pair {
	return jointSuccessors(a, b, g.has)
}

// JointSuccessorEdgeCount returns len(JointSuccessors(a, b)); there are
// no parallel edges in a simple k-mer graph, so the edge count and the
// node-pair count coincide.
func (g *MapGraph) JointSuccessorEdgeCount(a, b kmer.Node) int {
	return len(g.JointSuccessors(a, b))
}

// InDegree returns the number of present predecessors of n.
func (g *MapGraph) InDegree(n kmer.Node) int { return len(g.Predecessors(n)) }

// OutDegree returns the number of present successors of n.
func (g *MapGraph) OutDegree(n kmer.Node) int { return len(g.Successors(n)) }

// ToString renders the sequence n's handle is currently oriented to.
func (g *MapGraph) ToString(n kmer.Node) string { return n.String() }

// GetNT returns the 2-bit code at position i of ToString(n).
func (g *MapGraph) GetNT(n kmer.Node, i int) int { return n.GetNT(i) }

// AllNodes returns every node of the graph in ascending canonical order.
func (g *MapGraph) AllNodes() []kmer.Node { return sortedNodes(g.nodes) }
