package graph

import (
	"testing"

	"github.com/bubblehunt/snpcaller/src/kmer"
)

func mustNode(t *testing.T, seq string) kmer.Node {
	t.Helper()
	n, err := kmer.New([]byte(seq))
	if err != nil {
		t.Fatalf("could not build node for %q: %v", seq, err)
	}
	return n
}

// a simple unbranched path, k=3: AACAGA yields 3-mers
// AAC, ACA, CAG, AGA
func buildLinearGraph(t *testing.T) *MapGraph {
	t.Helper()
	g := NewMapGraph(3)
	if err := g.AddPath([]byte("AACAGA")); err != nil {
		t.Fatalf("unexpected error building fixture graph: %v", err)
	}
	return g
}

func TestMapGraphSuccessorsOnLinearPath(t *testing.T) {
	g := buildLinearGraph(t)
	n := mustNode(t, "AAC")
	succs := g.Successors(n)
	if len(succs) != 1 {
		t.Fatalf("expected exactly one successor on an unbranched path, got %d", len(succs))
	}
	if succs[0].String() != "ACA" && g.Reverse(succs[0]).String() != "ACA" {
		t.Fatalf("unexpected successor: %v", succs[0].String())
	}
}

func TestMapGraphOutDegreeZeroAtPathEnd(t *testing.T) {
	g := buildLinearGraph(t)
	n := mustNode(t, "AGA")
	if d := g.OutDegree(n); d != 0 {
		t.Fatalf("expected out-degree 0 at the end of the path, got %d", d)
	}
}

func TestMapGraphBranching(t *testing.T) {
	// AACCT and AACTT share their first 3-mer AAC, which extends to
	// both ACC and ACT -- a branch at AAC with out-degree 2.
	g := NewMapGraph(3)
	if err := g.AddPath([]byte("AACCT")); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPath([]byte("AACTT")); err != nil {
		t.Fatal(err)
	}
	n := mustNode(t, "AAC")
	if d := g.OutDegree(n); d != 2 {
		t.Fatalf("expected out-degree 2 at the branch point, got %d", d)
	}
}

func TestJointSuccessors(t *testing.T) {
	// two parallel unbranched paths differing by a single substituted
	// base: a minimal SNP bubble shape at k=3.
	g := NewMapGraph(3)
	if err := g.AddPath([]byte("AACGT")); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPath([]byte("AATGT")); err != nil {
		t.Fatal(err)
	}
	a := mustNode(t, "AAC")
	b := mustNode(t, "AAT")
	pairs := g.JointSuccessors(a, b)
	if len(pairs) != 1 {
		t.Fatalf("expected exactly one joint successor pair, got %d", len(pairs))
	}
	if g.JointSuccessorEdgeCount(a, b) != len(pairs) {
		t.Fatalf("JointSuccessorEdgeCount must equal len(JointSuccessors)")
	}
}

func TestAllNodesDeterministicOrder(t *testing.T) {
	g := buildLinearGraph(t)
	first := g.AllNodes()
	second := g.AllNodes()
	if len(first) != len(second) {
		t.Fatalf("AllNodes returned different lengths across calls")
	}
	for i := range first {
		if first[i].Value != second[i].Value {
			t.Fatalf("AllNodes is not deterministic at index %d", i)
		}
		if i > 0 && first[i-1].Value > first[i].Value {
			t.Fatalf("AllNodes is not sorted ascending at index %d", i)
		}
	}
}

func TestToStringRespectsOrientation(t *testing.T) {
	g := buildLinearGraph(t)
	n := mustNode(t, "AAC")
	r := g.Reverse(n)
	if g.ToString(n) == g.ToString(r) {
		t.Fatalf("ToString of a node and its reverse must differ unless the k-mer is a palindrome")
	}
	if g.ToString(r) != r.String() {
		t.Fatalf("ToString must delegate to the node's own oriented String()")
	}
}
