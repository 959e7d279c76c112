package traversal

import (
	"github.com/bubblehunt/snpcaller/src/graph"
	"github.com/bubblehunt/snpcaller/src/kmer"
)

// unitigWalker follows a maximal non-branching path: it stops as soon
// as the current node has anything other than exactly one successor,
// or as soon as it would revisit an already-crossed branch point.
type unitigWalker struct {
	g graph.Graph
	t *Terminator
}

// Traverse walks start's maximal non-branching path. dir is reserved
// (only Outgoing exists); a leftward walk is obtained by reversing
// start before calling Traverse.
func (w *unitigWalker) Traverse(start kmer.Node, dir Direction, out *[]byte) []Divergence {
	current := start
	visited := map[uint64]bool{current.Value: true}
	for {
		next := w.g.Successors(current)
		branching := len(next) != 1 || w.g.InDegree(current) > 1
		if w.t.markAndCheck(current, branching) {
			break
		}
		if len(next) != 1 {
			break
		}
		n := next[0]
		if visited[n.Value] {
			// a non-branching cycle (a collapsed tandem repeat, a
			// circular contig): every node on it has degree 1, so the
			// terminator's branch-only tracking never fires. Stop here
			// instead of walking it forever.
			break
		}
		visited[n.Value] = true
		appendBase(out, n)
		current = n
	}
	return nil
}

// contigWalker is the same walk, except it does not stop at a branch
// point: it records the crossing as a Divergence and continues along
// the first successor, only stopping once it revisits a branch point
// already crossed during this walk (preventing an infinite loop on a
// graph with a cycle of branch points).
type contigWalker struct {
	g graph.Graph
	t *Terminator
}

// Traverse walks start's path through branch points, recording each
// crossing. dir is reserved (only Outgoing exists); a leftward walk is
// obtained by reversing start before calling Traverse.
func (w *contigWalker) Traverse(start kmer.Node, dir Direction, out *[]byte) []Divergence {
	current := start
	visited := map[uint64]bool{current.Value: true}
	var divergences []Divergence
	for {
		next := w.g.Successors(current)
		branching := len(next) != 1 || w.g.InDegree(current) > 1
		if w.t.markAndCheck(current, branching) {
			break
		}
		if len(next) == 0 {
			break
		}
		if branching {
			divergences = append(divergences, Divergence{Position: len(*out)})
		}
		n := next[0]
		if visited[n.Value] {
			// same non-branching-cycle guard as unitigWalker: a
			// degree-1 loop never trips the terminator's branch-only
			// tracking, so it needs its own visited set to terminate.
			break
		}
		visited[n.Value] = true
		appendBase(out, n)
		current = n
	}
	return divergences
}

// appendBase appends the uppercase base that n's handle introduces,
// i.e. the last character of its rendered string, in the direction the
// walk is following.
func appendBase(out *[]byte, n kmer.Node) {
	s := n.String()
	*out = append(*out, s[len(s)-1])
}
