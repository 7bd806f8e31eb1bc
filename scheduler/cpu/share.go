package cpu

import (
	"github.com/twitter/quotasched/scheduler/domain"
)

// Share is a scheduling context that is both a claim (priority and quota
// backed, low latency) and a fill (best effort round robin).
//
// The caller owns a Share. It must be removed from its scheduler before it
// is dropped. Only the quota may change after construction, through
// Scheduler.SetQuota.
type Share struct {
	name  string
	prio  domain.Priority
	quota uint
	claim uint
	fill  uint
	ready bool

	claimNode membership
	fillNode  membership
	debt      replenishmentHandle
}

// NewShare makes an unready share with priority p and a quota of q per round.
// A zero quota makes a fill-only share.
func NewShare(name string, p domain.Priority, q uint) *Share {
	return &Share{name: name, prio: domain.MakePriority(int(p)), quota: q, claim: q}
}

func (s *Share) Name() string              { return s.name }
func (s *Share) Priority() domain.Priority { return s.prio }
func (s *Share) Quota() uint               { return s.quota }

// Claim is the quota left to the share in the current round.
func (s *Share) Claim() uint { return s.claim }

// Fill is the remaining length of the share's current round robin slice.
func (s *Share) Fill() uint  { return s.fill }
func (s *Share) Ready() bool { return s.ready }

func (s *Share) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}

func minUint(a, b uint) uint {
	if a < b {
		return a
	}
	return b
}
