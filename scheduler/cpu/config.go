package cpu

import (
	"github.com/pkg/errors"

	"github.com/twitter/quotasched/scheduler/domain"
)

// FillPolicy selects how fill time is shared between ready shares.
type FillPolicy string

const (
	// RoundRobinFill runs the fill list strictly in order.
	RoundRobinFill FillPolicy = "round-robin"
	// PriorityFill prefers the highest priority ready share for fill time.
	PriorityFill FillPolicy = "priority"
)

const (
	DefaultQuota     = 256000
	DefaultFill      = 10000
	DefaultMaxClaims = 256
)

// Config holds the parameters of a Scheduler. Times are in the caller's
// time unit, usually microseconds.
type Config struct {
	// Quota is the length of a round and the upper bound of the sum of all claim quotas.
	Quota uint `json:"quota" yaml:"quota"`
	// Fill is the length of one round robin slice.
	Fill uint `json:"fill" yaml:"fill"`
	// Priorities is the number of claim priority levels, at most domain.NumPriorities.
	Priorities int `json:"priorities" yaml:"priorities"`
	// MaxClaims bounds the number of shares with quota, it sizes the replenishment arena.
	MaxClaims  int        `json:"max_claims" yaml:"max_claims"`
	FillPolicy FillPolicy `json:"fill_policy" yaml:"fill_policy"`
	// Replenish keeps a ledger of the claim time consumed in a round, owed back
	// at the end of that round. The round reset restores every claim at the
	// same moment, so the flag only changes the debt ledger and its metrics,
	// never which share is scheduled.
	Replenish bool `json:"replenish" yaml:"replenish"`
}

func DefaultConfig() Config {
	return Config{
		Quota:      DefaultQuota,
		Fill:       DefaultFill,
		Priorities: domain.NumPriorities,
		MaxClaims:  DefaultMaxClaims,
		FillPolicy: PriorityFill,
		Replenish:  true,
	}
}

// Validate returns an error describing the first invalid field of c.
func (c Config) Validate() error {
	if c.Quota == 0 {
		return errors.New("quota must be positive")
	}
	if c.Fill == 0 {
		return errors.New("fill must be positive")
	}
	if c.Priorities < 1 || c.Priorities > domain.NumPriorities {
		return errors.Errorf("priorities must be in [1, %d], got %d", domain.NumPriorities, c.Priorities)
	}
	if c.MaxClaims < 1 {
		return errors.Errorf("max_claims must be positive, got %d", c.MaxClaims)
	}
	switch c.FillPolicy {
	case RoundRobinFill, PriorityFill:
	default:
		return errors.Errorf("unknown fill policy %q, supported values are %v",
			c.FillPolicy, []FillPolicy{RoundRobinFill, PriorityFill})
	}
	return nil
}
