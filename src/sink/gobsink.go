package sink

import (
	"encoding/gob"
	"fmt"
	"os"
)

// GobSink is an on-disk Sink: every emitted sequence is gob-encoded and
// streamed straight to a file, in the order Emit is called, under the
// same critical section that updates the shared counters.
type GobSink struct {
	Counters
	file    *os.File
	encoder *gob.Encoder
}

// NewGobSink creates (or truncates) path and returns a Sink that
// streams gob-encoded Sequence records into it.
func NewGobSink(path string) (*GobSink, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: could not create output file: %v", err)
	}
	return &GobSink{file: fh, encoder: gob.NewEncoder(fh)}, nil
}

// Emit encodes seq1 then seq2 to the underlying file and updates the
// shared counters, all under a single critical section.
func (s *GobSink) Emit(seq1, seq2 *Sequence, whereToExtend int, highQuality bool) error {
	s.Lock()
	defer s.Unlock()
	if err := s.encoder.Encode(seq1); err != nil {
		return fmt.Errorf("sink: could not write sequence: %v", err)
	}
	if err := s.encoder.Encode(seq2); err != nil {
		return fmt.Errorf("sink: could not write sequence: %v", err)
	}
	s.RecordLocked(whereToExtend, highQuality)
	return nil
}

// Close closes the underlying file. It is not part of the Sink
// interface, since MemSink has no resource to release.
func (s *GobSink) Close() error { return s.file.Close() }
