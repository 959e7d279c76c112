package bubble

import (
	"fmt"

	"github.com/bubblehunt/snpcaller/src/kmer"
	"github.com/bubblehunt/snpcaller/src/sink"
	"github.com/bubblehunt/snpcaller/src/traversal"
)

// finish assigns the bubble its index, renders both allele sequences,
// and hands them to the shared sink. The index assignment and the sink
// insertion are deliberately not in the same critical section: two
// workers may obtain adjacent indices and then insert in either order.
func (sc *SearchContext) finish() error {
	sc.bubble.Index = sc.sink.NextIndex()

	seq1 := sc.buildSequence(0, "higher")
	seq2 := sc.buildSequence(1, "lower")
	sc.bubble.Seq1 = seq1
	sc.bubble.Seq2 = seq2

	highQuality := sc.bubble.Score < sc.cfg.Threshold
	return sc.sink.Emit(seq1, seq2, sc.bubble.WhereToExtend, highQuality)
}

// buildSequence renders pathIdx (0 or 1) into a Sequence, laying out
// the bytes left to right as: the reverse-complemented left extension
// (lowercase), the left closure (lowercase, if present), the bubble
// core (uppercase), the right closure (lowercase, if present), and the
// right extension (lowercase).
func (sc *SearchContext) buildSequence(pathIdx int, label string) *sink.Sequence {
	b := &sc.bubble
	k := sc.g.KmerSize()

	var out []byte
	for i := len(b.ExtensionLeft) - 1; i >= 0; i-- {
		out = append(out, complementLower(b.ExtensionLeft[i]))
	}
	if b.ClosureLeft != nil {
		out = append(out, toLower(*b.ClosureLeft))
	}

	begin := sc.g.ToString(b.Begin[pathIdx])
	end := sc.g.ToString(b.End[pathIdx])
	out = append(out, begin[:k-1]...)
	out = append(out, end...)

	if b.ClosureRight != nil {
		out = append(out, toLower(*b.ClosureRight))
	}
	for _, c := range b.ExtensionRight {
		out = append(out, toLower(c))
	}

	return &sink.Sequence{
		ID:      []byte(fmt.Sprintf("%d_%s", b.Index, label)),
		Comment: []byte(sc.buildComment(label)),
		Seq:     out,
	}
}

// buildComment renders the "SNP_<type>_path_<index>|<quality>[...]"
// metadata string for one of the two alleles.
func (sc *SearchContext) buildComment(label string) string {
	b := &sc.bubble
	quality := "high"
	if b.Score >= sc.cfg.Threshold {
		quality = "low"
	}
	comment := fmt.Sprintf("SNP_%s_path_%d|%s", label, b.Index, quality)

	leftPresent := b.WhereToExtend%2 == 1
	rightPresent := b.WhereToExtend > 1

	switch sc.cfg.TraversalKind {
	case traversal.Unitig:
		comment += fmt.Sprintf("|left_unitig_length_%d|right_unitig_length_%d",
			lengthIfPresent(leftPresent, len(b.ExtensionLeft)),
			lengthIfPresent(rightPresent, len(b.ExtensionRight)))
	case traversal.Contig:
		comment += fmt.Sprintf("|left_unitig_length_%d|right_unitig_length_%d",
			lengthIfPresent(leftPresent, b.DivergenceLeft),
			lengthIfPresent(rightPresent, b.DivergenceRight))
		comment += fmt.Sprintf("|left_contig_length_%d|right_contig_length_%d",
			lengthIfPresent(leftPresent, len(b.ExtensionLeft)),
			lengthIfPresent(rightPresent, len(b.ExtensionRight)))
	}
	return comment
}

func lengthIfPresent(present bool, length int) int {
	if !present {
		return 0
	}
	return length + 1
}

func toLower(b byte) byte { return b + ('a' - 'A') }

func complementLower(b byte) byte {
	c := kmer.ComplementPacked(uint64(kmer.Code(b)))
	return toLower(kmer.Letter(c))
}
