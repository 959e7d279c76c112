package traversal

import (
	"testing"

	"github.com/bubblehunt/snpcaller/src/graph"
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

func TestUnitigWalkerStopsAtDeadEnd(t *testing.T) {
	g := graph.NewMapGraph(3)
	if err := g.AddPath([]byte("AAACGT")); err != nil {
		t.Fatal(err)
	}
	term := NewTerminator()
	w := NewWalker(Unitig, g, term)
	start := mustNode(t, "AAC")
	var out []byte
	divs := w.Traverse(start, Outgoing, &out)
	if len(divs) != 0 {
		t.Fatalf("unitig walker must never report a divergence, got %v", divs)
	}
	if string(out) != "GT" {
		t.Fatalf("expected the walk to append GT, got %q", out)
	}
}

func TestUnitigWalkerStopsAtBranch(t *testing.T) {
	g := graph.NewMapGraph(3)
	if err := g.AddPath([]byte("AAACG")); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPath([]byte("AAAGC")); err != nil {
		t.Fatal(err)
	}
	term := NewTerminator()
	w := NewWalker(Unitig, g, term)
	start := mustNode(t, "AAA")
	var out []byte
	w.Traverse(start, Outgoing, &out)
	if len(out) != 0 {
		t.Fatalf("a walk starting right at a branch point must append nothing, got %q", out)
	}
}

func TestContigWalkerRecordsDivergence(t *testing.T) {
	g := graph.NewMapGraph(3)
	if err := g.AddPath([]byte("AACGT")); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPath([]byte("AACTT")); err != nil {
		t.Fatal(err)
	}
	term := NewTerminator()
	w := NewWalker(Contig, g, term)
	start := mustNode(t, "AAC")
	var out []byte
	divs := w.Traverse(start, Outgoing, &out)
	if len(divs) == 0 {
		t.Fatalf("expected the contig walker to cross and record at least one branch point")
	}
}

func TestTerminatorResetAllowsRevisit(t *testing.T) {
	g := graph.NewMapGraph(3)
	if err := g.AddPath([]byte("AAACGT")); err != nil {
		t.Fatal(err)
	}
	term := NewTerminator()
	w := NewWalker(Unitig, g, term)
	start := mustNode(t, "AAC")
	var out1, out2 []byte
	w.Traverse(start, Outgoing, &out1)
	term.Reset()
	w.Traverse(start, Outgoing, &out2)
	if string(out1) != string(out2) {
		t.Fatalf("resetting the terminator must let an identical walk repeat identically: %q vs %q", out1, out2)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{None: "none", Unitig: "unitig", Contig: "contig"}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestNewWalkerNoneIsNil(t *testing.T) {
	g := graph.NewMapGraph(3)
	if w := NewWalker(None, g, NewTerminator()); w != nil {
		t.Fatalf("expected a nil Walker for Kind None, got %v", w)
	}
}
