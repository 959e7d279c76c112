package config

import (
	"testing"

	"github.com/bubblehunt/snpcaller/src/traversal"
)

func validConfig() Config {
	return Config{
		AuthorisedBranching: LaxBranching,
		TraversalKind:       traversal.Unitig,
		Threshold:           100,
		NumWorkers:          1,
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadBranching(t *testing.T) {
	c := validConfig()
	c.AuthorisedBranching = 7
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error for an out-of-range branching policy")
	}
}

func TestValidateRejectsBadTraversalKind(t *testing.T) {
	c := validConfig()
	c.TraversalKind = traversal.Kind(99)
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error for an unknown traversal kind")
	}
}

func TestValidateRejectsZeroWorkers(t *testing.T) {
	c := validConfig()
	c.NumWorkers = 0
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error for zero workers")
	}
}
