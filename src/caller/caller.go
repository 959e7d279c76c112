// Package caller is the outer driver: it owns one bubble.SearchContext
// per worker and fans Process calls out over the node set, data-parallel,
// with every node dispatched exactly once regardless of how the range
// is split across goroutines.
package caller

import (
	"sync"
	"sync/atomic"

	"github.com/exascience/pargo/parallel"

	"github.com/bubblehunt/snpcaller/src/bubble"
	"github.com/bubblehunt/snpcaller/src/config"
	"github.com/bubblehunt/snpcaller/src/graph"
	"github.com/bubblehunt/snpcaller/src/kmer"
	"github.com/bubblehunt/snpcaller/src/sink"
)

// Run dispatches one bubble.SearchContext.Process call per node in
// nodes, splitting the range across goroutines with
// parallel.Range. Each goroutine constructs its own SearchContext --
// and therefore its own traversal.Walker and traversal.Terminator --
// bound to the shared, read-only g and the shared sink s, so no search
// state crosses goroutines. A Sink.Emit failure stops dispatching
// further nodes; it does not interrupt a goroutine already midway
// through a node.
func Run(cfg config.Config, g graph.Graph, s sink.Sink, nodes []kmer.Node) error {
	var stopped int32
	var mu sync.Mutex
	var firstErr error

	parallel.Range(0, len(nodes), 0, func(low, high int) {
		sc := bubble.NewSearchContext(g, cfg, s)
		for i := low; i < high; i++ {
			if atomic.LoadInt32(&stopped) != 0 {
				return
			}
			if err := sc.Process(nodes[i]); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				atomic.StoreInt32(&stopped, 1)
				return
			}
		}
	})

	return firstErr
}
