package kmer

import "sort"

// Strand records which physical orientation a Node handle currently
// refers to, relative to the canonical (lexicographically/numerically
// smaller) encoding stored in Node.Value.
type Strand uint8

const (
	// Forward means the node's canonical value already encodes the
	// orientation this handle refers to.
	Forward Strand = 0
	// ReverseStrand means this handle refers to the reverse complement of
	// the orientation encoded by the canonical value.
	ReverseStrand Strand = 1
)

// Node is a handle on a de Bruijn graph vertex. Value is the canonical
// 2-bit-packed k-mer (the smaller of the two strand encodings); two
// Nodes are considered the same vertex iff their Values are equal,
// regardless of Strand. Strand records which of the two physical
// orientations this particular handle is looking at, so that rendering
// and edge-direction queries (ToString, GetNT, successors/predecessors)
// resolve to the right sequence.
type Node struct {
	Value  uint64
	Strand Strand
	K      int
}

// New builds the Node for an oriented, length-K ACGT sequence. The
// returned Node's Strand records whether seq itself was already the
// canonical orientation.
func New(seq []byte) (Node, error) {
	fwd, err := Encode(seq)
	if err != nil {
		return Node{}, err
	}
	k := len(seq)
	rc := ReverseComplementPacked(fwd, k)
	if fwd <= rc {
		return Node{Value: fwd, Strand: Forward, K: k}, nil
	}
	return Node{Value: rc, Strand: ReverseStrand, K: k}, nil
}

// Equal reports whether two Nodes identify the same vertex, irrespective
// of orientation.
func Equal(a, b Node) bool { return a.Value == b.Value }

// Reverse returns the Node for the reverse complement of n: same vertex,
// opposite Strand.
func Reverse(n Node) Node {
	return Node{Value: n.Value, Strand: n.Strand ^ 1, K: n.K}
}

// orientedValue returns the 2-bit packed value of the sequence this
// handle is currently oriented to (i.e. applies the Strand to Value).
func (n Node) orientedValue() uint64 {
	if n.Strand == Forward {
		return n.Value
	}
	return ReverseComplementPacked(n.Value, n.K)
}

// String renders the uppercase ACGT sequence this handle refers to.
func (n Node) String() string {
	return string(Decode(n.orientedValue(), n.K))
}

// GetNT returns the 2-bit code of the base at position i of n.String().
func (n Node) GetNT(i int) int {
	shift := uint((n.K - 1 - i) * 2)
	return int((n.orientedValue() >> shift) & 3)
}

// Mutate returns the Nodes obtained by replacing the base at position
// with each of the four letters; if strictlyGreater is true, only
// letters with a 2-bit code greater than the current base's are
// returned (the symmetry-break the bubble search relies on to avoid
// exploring the same pair of start nodes twice).
func (n Node) Mutate(position int, strictlyGreater bool) []Node {
	current := n.GetNT(position)
	seq := Decode(n.orientedValue(), n.K)
	out := make([]Node, 0, 4)
	for c := 0; c < 4; c++ {
		if strictlyGreater && c <= current {
			continue
		}
		mutated := make([]byte, n.K)
		copy(mutated, seq)
		mutated[position] = Letter(uint64(c))
		node, err := New(mutated)
		if err != nil {
			continue
		}
		out = append(out, node)
	}
	return out
}

// Nodes is a slice of Node that can be sorted by canonical value, used
// wherever a deterministic node ordering is required (iterating a node
// set for dispatch, or presenting test output).
type Nodes []Node

func (n Nodes) Len() int      { return len(n) }
func (n Nodes) Swap(i, j int) { n[i], n[j] = n[j], n[i] }
func (n Nodes) Less(i, j int) bool {
	if n[i].Value != n[j].Value {
		return n[i].Value < n[j].Value
	}
	return n[i].Strand < n[j].Strand
}

// Sort sorts a Nodes slice in place by canonical value then strand.
func Sort(n Nodes) { sort.Sort(n) }
