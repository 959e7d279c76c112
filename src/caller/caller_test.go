package caller

import (
	"testing"

	"github.com/bubblehunt/snpcaller/src/config"
	"github.com/bubblehunt/snpcaller/src/graph"
	"github.com/bubblehunt/snpcaller/src/sink"
	"github.com/bubblehunt/snpcaller/src/traversal"
)

func buildSNPGraph(t *testing.T) *graph.MapGraph {
	t.Helper()
	g := graph.NewMapGraph(3)
	if err := g.AddPath([]byte("GAACA")); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPath([]byte("GACCA")); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRunFindsExactlyOneBubbleAcrossWorkers(t *testing.T) {
	g := buildSNPGraph(t)
	cfg := config.Config{
		AuthorisedBranching: config.NoBranchingCheck,
		TraversalKind:       traversal.None,
		Threshold:           100,
		NumWorkers:          4,
	}
	s := sink.NewMemSink()
	if err := Run(cfg, g, s, g.AllNodes()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats := s.Stats(); stats.NbBubbles != 1 {
		t.Fatalf("expected exactly one bubble regardless of worker split, got %d", stats.NbBubbles)
	}
}

func TestRunWithNoNodesEmitsNothing(t *testing.T) {
	cfg := config.Config{
		AuthorisedBranching: config.NoBranchingCheck,
		TraversalKind:       traversal.None,
		Threshold:           100,
		NumWorkers:          2,
	}
	s := sink.NewMemSink()
	if err := Run(cfg, graph.NewMapGraph(3), s, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats := s.Stats(); stats.NbBubbles != 0 {
		t.Fatalf("expected no bubbles for an empty node set, got %d", stats.NbBubbles)
	}
}
