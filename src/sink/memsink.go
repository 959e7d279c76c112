package sink

// MemSink is an in-memory Sink: sequences accumulate in a slice under
// the shared counters' lock. The test suite uses it since it needs no
// filesystem fixture.
type MemSink struct {
	Counters
	sequences []*Sequence
}

// NewMemSink returns an empty in-memory sink.
func NewMemSink() *MemSink {
	return &MemSink{}
}

// Emit inserts seq1 then seq2 and updates the shared counters, all
// under a single critical section.
func (s *MemSink) Emit(seq1, seq2 *Sequence, whereToExtend int, highQuality bool) error {
	s.Lock()
	defer s.Unlock()
	s.sequences = append(s.sequences, seq1, seq2)
	s.RecordLocked(whereToExtend, highQuality)
	return nil
}

// Sequences returns every sequence inserted so far, in insertion order.
// Intended for tests; callers must not mutate the returned slice.
func (s *MemSink) Sequences() []*Sequence {
	s.Lock()
	defer s.Unlock()
	out := make([]*Sequence, len(s.sequences))
	copy(out, s.sequences)
	return out
}
