// Package complexity implements the low-complexity filter the bubble
// search gates emission on: a pure, deterministic function scoring a
// pair of equal-length nucleotide sequences, higher meaning more
// repetitive.
package complexity

import (
	"fmt"
	"math"

	"github.com/will-rowe/ntHash"
	"gonum.org/v1/gonum/stat"
)

// canonical tells ntHash to fold a k-mer and its reverse complement
// into a single hash value.
const canonical bool = true

// subKmerSizes are the short sub-k-mer lengths used as composition
// probes: a repetitive path reuses the same few short sub-k-mers many
// times, which shows up as high variance in their frequency counts.
var subKmerSizes = []uint{2, 3}

// scale converts the summed population variance into an integer score
// with enough resolution for a caller's threshold to be meaningful.
const scale = 100.0

// FilterLowComplexity2Paths scores p1 and p2 for repetitiveness. Both
// must have the same length. The two paths are treated identically
// (the result does not depend on which is passed first); the returned
// score is an integer where higher means more repetitive.
func FilterLowComplexity2Paths(p1, p2 []byte) (int, error) {
	if len(p1) != len(p2) {
		return 0, fmt.Errorf("complexity: paths have different lengths (%d, %d)", len(p1), len(p2))
	}
	v1, err := pathVariance(p1)
	if err != nil {
		return 0, err
	}
	v2, err := pathVariance(p2)
	if err != nil {
		return 0, err
	}
	return int(math.Round((v1 + v2) * scale)), nil
}

// pathVariance sums, over each probe length in subKmerSizes, the
// population variance of that length's sub-k-mer frequency counts
// within path, counting every possible canonical sub-k-mer (absent
// ones as zero).
func pathVariance(path []byte) (float64, error) {
	var total float64
	for _, k := range subKmerSizes {
		if len(path) < int(k) {
			continue
		}
		freqs, err := subKmerFrequencies(path, k)
		if err != nil {
			return 0, err
		}
		if len(freqs) == 0 {
			continue
		}
		// there are 4^k/2 canonical k-mers, plus 4^(k/2)/2 palindromes
		// when k is even; the unseen ones count as zero
		possible := 1 << (2 * k)
		if k%2 == 0 {
			possible += 1 << k
		}
		possible /= 2
		for len(freqs) < possible {
			freqs = append(freqs, 0)
		}
		// stat.Variance divides by n-1; rescale to the population variance
		n := float64(len(freqs))
		total += stat.Variance(freqs, nil) * (n - 1) / n
	}
	return total, nil
}

// subKmerFrequencies rolls a canonical ntHash over path at length k and
// returns the observed frequency of each distinct hash value.
func subKmerFrequencies(path []byte, k uint) ([]float64, error) {
	seq := path
	hasher, err := ntHash.New(&seq, k)
	if err != nil {
		return nil, fmt.Errorf("complexity: could not hash sub-k-mers: %v", err)
	}
	counts := make(map[uint64]float64)
	for hv := range hasher.Hash(canonical) {
		counts[hv]++
	}
	freqs := make([]float64, 0, len(counts))
	for _, c := range counts {
		freqs = append(freqs, c)
	}
	return freqs, nil
}
