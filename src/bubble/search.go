package bubble

import (
	"fmt"

	"github.com/bubblehunt/snpcaller/src/complexity"
	"github.com/bubblehunt/snpcaller/src/config"
	"github.com/bubblehunt/snpcaller/src/graph"
	"github.com/bubblehunt/snpcaller/src/kmer"
	"github.com/bubblehunt/snpcaller/src/sink"
	"github.com/bubblehunt/snpcaller/src/traversal"
)

// SearchContext is a single worker's private view of the search: its
// own graph handle (read-only and safe to share, but held here for
// convenience), its own traversal primitive and terminator, and the
// one Bubble record it reuses across every candidate attempt. No field
// of a SearchContext is ever touched by more than one goroutine.
type SearchContext struct {
	g          graph.Graph
	cfg        config.Config
	sink       sink.Sink
	terminator *traversal.Terminator
	walker     traversal.Walker

	bubble Bubble
}

// NewSearchContext builds a worker-private search context bound to the
// shared, read-only graph and the shared output sink.
func NewSearchContext(g graph.Graph, cfg config.Config, s sink.Sink) *SearchContext {
	terminator := traversal.NewTerminator()
	return &SearchContext{
		g:          g,
		cfg:        cfg,
		sink:       s,
		terminator: terminator,
		walker:     traversal.NewWalker(cfg.TraversalKind, g, terminator),
	}
}

// Process launches a search seeded at node and at its reverse
// complement -- the mutation operator only tries nucleotides greater
// than the one it replaces on whichever strand it is given, so both
// orientations must seed to find every bubble touching node. Process
// never fails for want of a bubble; it only returns an error if the
// sink itself rejects an insertion.
func (sc *SearchContext) Process(node kmer.Node) error {
	if err := sc.start(node); err != nil {
		return err
	}
	return sc.start(sc.g.Reverse(node))
}

// start enumerates every node obtainable from root by replacing its
// last nucleotide with a strictly greater one, and tries to expand each
// resulting pair into a bubble.
func (sc *SearchContext) start(root kmer.Node) error {
	k := sc.g.KmerSize()
	mutations := sc.g.Mutate(root, k-1, true)
	for _, m := range mutations {
		sc.bubble.reset()
		sc.bubble.Begin[0] = root
		sc.bubble.Begin[1] = m
		if err := sc.expand(1, root, m, noPrev(), noPrev()); err != nil {
			return err
		}
	}
	return nil
}

// expand is the depth-first recursion at the heart of the search. It
// mirrors the control flow it is grounded on line for line, including
// the two behaviors that look like bugs but aren't: the recursive call
// breaks out of the successor loop after its first surviving pair
// under the strict and lax branching policies (sound, since those
// policies require both paths to be locally non-branching), and the
// terminal step re-applies the branching gate and aborts the whole
// bubble -- rather than trying the next pair -- if it fails.
func (sc *SearchContext) expand(pos int, a, b kmer.Node, prevA, prevB maybeNode) error {
	k := sc.g.KmerSize()
	assertf(pos <= k-1, "bubble: position counter %d exceeded k-1 (%d)", pos, k-1)

	if !sc.checkBranching(a, b) {
		return nil
	}

	for _, p := range sc.g.JointSuccessors(a, b) {
		if !checkNodesDiff(prevA, a, p.A) || !checkNodesDiff(prevB, b, p.B) {
			continue
		}

		if pos < k-1 {
			if err := sc.expand(pos+1, p.A, p.B, some(a), some(b)); err != nil {
				return err
			}
			if sc.cfg.AuthorisedBranching == config.StrictBranching || sc.cfg.AuthorisedBranching == config.LaxBranching {
				break
			}
			continue
		}

		if !sc.checkBranching(p.A, p.B) {
			return nil
		}

		sc.bubble.End[0] = p.A
		sc.bubble.End[1] = p.B

		if sc.checkPath() && sc.checkLowComplexity() {
			if sc.extend() {
				if err := sc.finish(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// checkNodesDiff enforces the node-disjointness invariant: next must
// differ from the node it extends and from that path's node one step
// back, using k-mer identity only (orientation does not matter here).
func checkNodesDiff(previous maybeNode, current, next kmer.Node) bool {
	if kmer.Equal(next, current) {
		return false
	}
	if previous.valid && kmer.Equal(next, previous.node) {
		return false
	}
	return true
}

// checkPath is the canonical-strand check: a bubble is accepted only
// when its first path renders, lexicographically, before the reverse
// complement of its own end node -- this is what makes each distinct
// bubble surface exactly once despite every node seeding a search in
// both orientations.
func (sc *SearchContext) checkPath() bool {
	return sc.g.ToString(sc.bubble.Begin[0]) < sc.g.ToString(sc.g.Reverse(sc.bubble.End[0]))
}

// checkLowComplexity scores both paths and records the result on the
// bubble even when the check fails, matching the upstream behavior of
// always recording Score.
func (sc *SearchContext) checkLowComplexity() bool {
	k := sc.g.KmerSize()
	path1 := []byte(sc.g.ToString(sc.bubble.Begin[0])[:k-1] + sc.g.ToString(sc.bubble.End[0]))
	path2 := []byte(sc.g.ToString(sc.bubble.Begin[1])[:k-1] + sc.g.ToString(sc.bubble.End[1]))

	score, err := complexity.FilterLowComplexity2Paths(path1, path2)
	assertf(err == nil, "bubble: low-complexity filter failed on equal-length paths: %v", err)
	sc.bubble.Score = score

	return score < sc.cfg.Threshold || (score >= sc.cfg.Threshold && sc.cfg.Low)
}

// checkBranching applies the branching-rejection policy to a pair of
// nodes, strict and lax being the only policies that can reject.
func (sc *SearchContext) checkBranching(a, b kmer.Node) bool {
	switch sc.cfg.AuthorisedBranching {
	case config.StrictBranching:
		if sc.branchesOnOnePath(a) || sc.branchesOnOnePath(b) {
			return false
		}
	case config.LaxBranching:
		if sc.branchesJointly(a, b) {
			return false
		}
	}
	return true
}

// branchesOnOnePath reports whether n alone has more than one
// predecessor or successor.
func (sc *SearchContext) branchesOnOnePath(n kmer.Node) bool {
	return sc.g.InDegree(n) >= 2 || sc.g.OutDegree(n) >= 2
}

// branchesJointly reports whether both the forward pair (a,b) and its
// reverse-complement pair have at least two joint successor edges --
// the lax policy only rejects when neither orientation offers a single
// unambiguous joint extension.
func (sc *SearchContext) branchesJointly(a, b kmer.Node) bool {
	return sc.g.JointSuccessorEdgeCount(a, b) >= 2 &&
		sc.g.JointSuccessorEdgeCount(sc.g.Reverse(a), sc.g.Reverse(b)) >= 2
}

// assertf panics with a formatted message when cond is false. Internal
// invariant violations (a corrupt graph, a filter called on
// mismatched-length paths) are not meant to be recovered from.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
