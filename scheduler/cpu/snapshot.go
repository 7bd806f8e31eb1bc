package cpu

import (
	"fmt"
	"strings"
)

type ClaimState struct {
	Name  string
	Claim uint
	Ready bool
}

type FillState struct {
	Name string
	Fill uint
}

type DebtState struct {
	Name string
	Owed uint
	// At is the time from now at which the record matures.
	At uint
}

// Snapshot is a copy of the scheduler state for diagnostics and tests.
type Snapshot struct {
	Head       string
	HeadQuota  uint
	HeadClaims bool
	Residual   uint
	// Claims is indexed by priority, ready claims precede unready ones.
	Claims [][]ClaimState
	Fills  []FillState
	Debts  []DebtState
}

func (s *Scheduler) Snapshot() Snapshot {
	snap := Snapshot{
		Head:       s.head.String(),
		HeadQuota:  s.HeadQuota(),
		HeadClaims: s.headClaims,
		Residual:   s.residual,
		Claims:     make([][]ClaimState, len(s.readyClaims)),
	}
	for p := range s.readyClaims {
		add := func(sh *Share) {
			snap.Claims[p] = append(snap.Claims[p], ClaimState{Name: sh.name, Claim: sh.claim, Ready: sh.ready})
		}
		s.readyClaims[p].each(add)
		s.unreadyClaims[p].each(add)
	}
	s.fills.each(func(sh *Share) {
		snap.Fills = append(snap.Fills, FillState{Name: sh.name, Fill: sh.fill})
	})
	s.debts.each(func(sh *Share, owed, at uint) {
		snap.Debts = append(snap.Debts, DebtState{Name: sh.name, Owed: owed, At: at})
	})
	return snap
}

// String renders the lists from the highest priority down, then the fills:
//
//	3'110 5°0 - 1'0 7°60 - 4'90 - 2°170 - 1'100 6 4
//
// A ' marks a ready claim and ° an unready one, followed by the claim left.
// Only the first fill shows its slice. An empty list shows as _.
func (snap Snapshot) String() string {
	groups := make([]string, 0, len(snap.Claims)+1)
	for p := len(snap.Claims) - 1; p >= 0; p-- {
		var parts []string
		for _, c := range snap.Claims[p] {
			mark := "°"
			if c.Ready {
				mark = "'"
			}
			parts = append(parts, fmt.Sprintf("%s%s%d", c.Name, mark, c.Claim))
		}
		groups = append(groups, group(parts))
	}
	var fills []string
	for i, f := range snap.Fills {
		if i == 0 {
			fills = append(fills, fmt.Sprintf("%s'%d", f.Name, f.Fill))
		} else {
			fills = append(fills, f.Name)
		}
	}
	groups = append(groups, group(fills))
	return strings.Join(groups, " - ")
}

func group(parts []string) string {
	if len(parts) == 0 {
		return "_"
	}
	return strings.Join(parts, " ")
}
