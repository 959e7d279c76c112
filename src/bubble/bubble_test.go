package bubble

import (
	"testing"

	"github.com/bubblehunt/snpcaller/src/config"
	"github.com/bubblehunt/snpcaller/src/graph"
	"github.com/bubblehunt/snpcaller/src/sink"
	"github.com/bubblehunt/snpcaller/src/traversal"
)

// buildSNPGraph returns a k=3 graph holding two parallel unbranched
// paths differing by a single substituted base -- the minimal isolated
// bubble shape: AAC-ACG-CGT against AAT-ATG-TGT.
func buildSNPGraph(t *testing.T) *graph.MapGraph {
	t.Helper()
	g := graph.NewMapGraph(3)
	if err := g.AddPath([]byte("AACGT")); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPath([]byte("AATGT")); err != nil {
		t.Fatal(err)
	}
	return g
}

func searchAllNodes(t *testing.T, g graph.Graph, cfg config.Config, s sink.Sink) {
	t.Helper()
	sc := NewSearchContext(g, cfg, s)
	for _, n := range g.AllNodes() {
		if err := sc.Process(n); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestSearchFindsExactlyOneBubble(t *testing.T) {
	g := buildSNPGraph(t)
	cfg := config.Config{
		AuthorisedBranching: config.NoBranchingCheck,
		TraversalKind:       traversal.None,
		Threshold:           100,
		NumWorkers:          1,
	}
	s := sink.NewMemSink()
	searchAllNodes(t, g, cfg, s)

	stats := s.Stats()
	if stats.NbBubbles != 1 {
		t.Fatalf("expected exactly one bubble, got %d", stats.NbBubbles)
	}
	seqs := s.Sequences()
	if len(seqs) != 2 {
		t.Fatalf("expected exactly two rendered sequences, got %d", len(seqs))
	}
}

func TestSearchIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	g := buildSNPGraph(t)
	cfg := config.Config{
		AuthorisedBranching: config.NoBranchingCheck,
		TraversalKind:       traversal.None,
		Threshold:           100,
		NumWorkers:          1,
	}

	s1 := sink.NewMemSink()
	searchAllNodes(t, g, cfg, s1)
	s2 := sink.NewMemSink()
	searchAllNodes(t, g, cfg, s2)

	if s1.Stats().NbBubbles != s2.Stats().NbBubbles {
		t.Fatalf("search must be deterministic: got %d and %d bubbles",
			s1.Stats().NbBubbles, s2.Stats().NbBubbles)
	}
}

func TestStrictBranchingRejectsBranchedBubble(t *testing.T) {
	// add a third path that makes the middle of one of the two
	// branches actually branch, which the strict policy must reject.
	g := buildSNPGraph(t)
	if err := g.AddPath([]byte("ACGC")); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		AuthorisedBranching: config.StrictBranching,
		TraversalKind:       traversal.None,
		Threshold:           100,
		NumWorkers:          1,
	}
	s := sink.NewMemSink()
	searchAllNodes(t, g, cfg, s)
	if stats := s.Stats(); stats.NbBubbles != 0 {
		t.Fatalf("expected the strict policy to reject the branched bubble, got %d bubbles", stats.NbBubbles)
	}
}

// TestUnitigExtensionRendersClosureByte builds a bubble whose end node
// has a single unique successor outside the bubble itself, so the
// extension unit must append a lowercase closure byte on the right and
// report WhereToExtend accordingly.
func TestUnitigExtensionRendersClosureByte(t *testing.T) {
	g := buildSNPGraph(t)
	if err := g.AddPath([]byte("CGTC")); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		AuthorisedBranching: config.NoBranchingCheck,
		TraversalKind:       traversal.Unitig,
		Threshold:           100,
		NumWorkers:          1,
	}
	s := sink.NewMemSink()
	searchAllNodes(t, g, cfg, s)

	if stats := s.Stats(); stats.NbBubbles != 1 {
		t.Fatalf("expected exactly one bubble, got %d", stats.NbBubbles)
	}
	seqs := s.Sequences()
	if len(seqs) != 2 {
		t.Fatalf("expected exactly two rendered sequences, got %d", len(seqs))
	}

	// the two alleles render as AACGTc / AATGTc: a 5-base uppercase
	// core plus a single lowercase closure byte, no further unitig
	// extension since the one successor the closure consumed (GTC)
	// itself has no successor of its own.
	const wantLen = 6
	for _, seq := range seqs {
		if len(seq.Seq) != wantLen {
			t.Fatalf("expected rendered length %d, got %d (%q)", wantLen, len(seq.Seq), seq.Seq)
		}
		last := seq.Seq[wantLen-1]
		if last != 'c' {
			t.Fatalf("expected a lowercase closure byte at the end, got %q in %q", last, seq.Seq)
		}
		for _, c := range seq.Seq[:wantLen-1] {
			if c < 'A' || c > 'Z' {
				t.Fatalf("expected the core to stay uppercase, got %q", seq.Seq)
			}
		}
	}

	stats := s.Stats()
	if stats.NbWhereToExtend[2] != 1 {
		t.Fatalf("expected where_to_extend 2 (right closure only), got histogram %v", stats.NbWhereToExtend)
	}
}

func TestLowComplexityThresholdGatesEmission(t *testing.T) {
	g := buildSNPGraph(t)
	cfg := config.Config{
		AuthorisedBranching: config.NoBranchingCheck,
		TraversalKind:       traversal.None,
		Threshold:           0, // impossibly strict: nothing clears it
		Low:                 false,
		NumWorkers:          1,
	}
	s := sink.NewMemSink()
	searchAllNodes(t, g, cfg, s)
	if stats := s.Stats(); stats.NbBubbles != 0 {
		t.Fatalf("expected the low-complexity gate to reject every bubble at threshold 0, got %d", stats.NbBubbles)
	}

	cfg.Low = true
	s2 := sink.NewMemSink()
	searchAllNodes(t, g, cfg, s2)
	if stats := s2.Stats(); stats.NbBubbles != 1 {
		t.Fatalf("expected Low=true to let the bubble through regardless of score, got %d", stats.NbBubbles)
	}
}
