// Package config defines the run-wide configuration surface validated
// once at startup, before any worker is launched.
package config

import (
	"fmt"

	"github.com/bubblehunt/snpcaller/src/traversal"
)

// Branching policy values for Config.AuthorisedBranching.
const (
	// StrictBranching rejects a candidate pair if either path branches.
	StrictBranching = 0
	// LaxBranching rejects a candidate pair only if both paths branch
	// jointly.
	LaxBranching = 1
	// NoBranchingCheck always accepts, regardless of branching.
	NoBranchingCheck = 2
)

// Config is the full set of knobs the bubble search, the extension
// unit, and the outer driver read from. It is read-only for the
// lifetime of a run.
type Config struct {
	// AuthorisedBranching selects the branching-rejection policy; must
	// be one of StrictBranching, LaxBranching, NoBranchingCheck.
	AuthorisedBranching int
	// TraversalKind selects how far extension walks past a bubble's
	// endpoints.
	TraversalKind traversal.Kind
	// Threshold is the low-complexity score cutoff; scores below it are
	// considered high quality.
	Threshold int
	// Low, when true, also emits bubbles that failed the low-complexity
	// check.
	Low bool
	// NumWorkers is the number of processors a run uses: cmd/call.go
	// sets GOMAXPROCS to it, and the outer driver's parallel.Range split
	// follows GOMAXPROCS (caller.Run does not read this field itself).
	NumWorkers int
}

// Validate rejects an out-of-range AuthorisedBranching or an unknown
// TraversalKind before any worker is launched.
func (c Config) Validate() error {
	if c.AuthorisedBranching < StrictBranching || c.AuthorisedBranching > NoBranchingCheck {
		return fmt.Errorf("config: authorised-branching must be 0, 1, or 2 (got %d)", c.AuthorisedBranching)
	}
	switch c.TraversalKind {
	case traversal.None, traversal.Unitig, traversal.Contig:
	default:
		return fmt.Errorf("config: unknown traversal kind %v", c.TraversalKind)
	}
	if c.NumWorkers < 1 {
		return fmt.Errorf("config: num-workers must be at least 1 (got %d)", c.NumWorkers)
	}
	return nil
}
