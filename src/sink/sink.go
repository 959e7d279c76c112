// Package sink implements the shared output bank the bubble search's
// emitter inserts finished sequences into: a locked insert-plus-stats
// critical section on top of swappable concrete backends.
package sink

import (
	"sync"
	"sync/atomic"
)

// Sequence is one rendered allele of a bubble: an identifier, a
// free-form comment (the "SNP_..." metadata string), and the
// nucleotide data itself.
type Sequence struct {
	ID      []byte
	Comment []byte
	Seq     []byte
}

// Stats is a snapshot of the shared run counters, safe to copy.
type Stats struct {
	NbBubbles       uint64
	NbBubblesHigh   uint64
	NbBubblesLow    uint64
	NbWhereToExtend [4]uint64
}

// Sink is the shared output bank. NextIndex is the lone atomic
// fetch-add issuing unique bubble indices; it is deliberately kept
// outside the locked Emit call so two workers may obtain adjacent
// indices and then insert in either order. Emit performs the single
// locked critical section that inserts both sequences of a bubble and
// updates the shared counters together, matching the emitter's
// ordering guarantees.
type Sink interface {
	NextIndex() uint64
	Emit(seq1, seq2 *Sequence, whereToExtend int, highQuality bool) error
	Stats() Stats
}

// Counters is the mutex- and atomic-protected state shared by every
// concrete Sink, including ones a caller assembles outside this
// package (see cmd/call.go's FASTA sink): embed it, call NextIndex
// outside your own lock, and call Lock/RecordLocked/Unlock around your
// insert.
type Counters struct {
	nbBubbles uint64 // atomic; the index-issuance counter

	mu              sync.Mutex
	nbBubblesHigh   uint64
	nbBubblesLow    uint64
	nbWhereToExtend [4]uint64
}

// NextIndex issues the next unique, dense bubble index.
func (c *Counters) NextIndex() uint64 {
	return atomic.AddUint64(&c.nbBubbles, 1)
}

// Lock acquires the counters' lock; callers hold it for the duration
// of their own insert plus the paired RecordLocked call.
func (c *Counters) Lock() { c.mu.Lock() }

// Unlock releases the counters' lock.
func (c *Counters) Unlock() { c.mu.Unlock() }

// RecordLocked records the stats half of Emit's critical section. The
// caller must already hold the lock (via Lock) for the full duration
// of the insert it is pairing with.
func (c *Counters) RecordLocked(whereToExtend int, highQuality bool) {
	c.nbWhereToExtend[whereToExtend]++
	if highQuality {
		c.nbBubblesHigh++
	} else {
		c.nbBubblesLow++
	}
}

// Stats returns a snapshot of the shared counters.
func (c *Counters) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		NbBubbles:       atomic.LoadUint64(&c.nbBubbles),
		NbBubblesHigh:   c.nbBubblesHigh,
		NbBubblesLow:    c.nbBubblesLow,
		NbWhereToExtend: c.nbWhereToExtend,
	}
}
