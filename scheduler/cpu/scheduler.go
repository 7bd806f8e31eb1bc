package cpu

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/quotasched/common/stats"
	"github.com/twitter/quotasched/scheduler/domain"
)

// Scheduler decides which share runs next on one CPU and for how long.
//
// Claim lists are kept per priority and split in a ready and an unready
// part. Within a ready list shares with claim left precede the exhausted
// ones, so the list head tells whether the priority has anything due.
type Scheduler struct {
	readyClaims   []*shareList
	unreadyClaims []*shareList
	fills         *shareList
	debts         *replenishmentQueue
	filler        filler

	idle       *Share
	head       *Share
	headQuota  uint
	headClaims bool
	headYields bool

	quota     uint
	residual  uint
	fill      uint
	replenish bool
	maxClaims int
	claims    int

	stat stats.StatsReceiver
}

// NewScheduler makes a scheduler that runs idle whenever no other share is
// ready. The idle share is never inserted and must not be passed to any
// other method.
func NewScheduler(idle *Share, cfg Config, stat stats.StatsReceiver) (*Scheduler, error) {
	if idle == nil {
		return nil, errors.New("idle share is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scheduler config")
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	s := &Scheduler{
		readyClaims:   make([]*shareList, cfg.Priorities),
		unreadyClaims: make([]*shareList, cfg.Priorities),
		fills:         newShareList("fills", fillMembership),
		debts:         newReplenishmentQueue(cfg.MaxClaims),
		filler:        newFiller(cfg.FillPolicy),
		idle:          idle,
		quota:         cfg.Quota,
		residual:      cfg.Quota,
		fill:          cfg.Fill,
		replenish:     cfg.Replenish,
		maxClaims:     cfg.MaxClaims,
		stat:          stat,
	}
	for p := range s.readyClaims {
		s.readyClaims[p] = newShareList(fmt.Sprintf("ready claims %s", domain.Priority(p)), claimMembership)
		s.unreadyClaims[p] = newShareList(fmt.Sprintf("unready claims %s", domain.Priority(p)), claimMembership)
	}
	s.setHead(idle, cfg.Fill, false)
	s.stat.Gauge(stats.SchedResidualGauge).Update(int64(s.residual))
	return s, nil
}

// trap reports a violated precondition. Callers own the shares and the
// call order, so this is a bug in the caller.
func trap(format string, args ...interface{}) {
	log.Panicf(format, args...)
}

func (s *Scheduler) check(sh *Share, op string) {
	if sh == nil {
		trap("%s: nil share", op)
	}
	if sh == s.idle {
		trap("%s: not allowed on the idle share", op)
	}
	if int(sh.prio) >= len(s.readyClaims) {
		trap("%s: share %s has priority %s, only %d levels are configured", op, sh, sh.prio, len(s.readyClaims))
	}
}

func (s *Scheduler) claimList(sh *Share) *shareList {
	if sh.ready {
		return s.readyClaims[sh.prio]
	}
	return s.unreadyClaims[sh.prio]
}

func (s *Scheduler) admitClaim(sh *Share) {
	if s.claims >= s.maxClaims {
		trap("share %s exceeds the limit of %d claims", sh, s.maxClaims)
	}
	s.claims++
	s.stat.Gauge(stats.SchedClaimsGauge).Update(int64(s.claims))
}

func (s *Scheduler) dropClaim(sh *Share) {
	s.claimList(sh).remove(sh)
	s.forgive(sh)
	s.claims--
	s.stat.Gauge(stats.SchedClaimsGauge).Update(int64(s.claims))
}

// Insert adds an unready share. A share with quota starts with its full
// claim at the head of its unready list.
func (s *Scheduler) Insert(sh *Share) {
	s.check(sh, "insert")
	if sh.ready {
		trap("insert: share %s is ready", sh)
	}
	if sh.quota == 0 {
		return
	}
	s.admitClaim(sh)
	sh.claim = sh.quota
	s.unreadyClaims[sh.prio].pushHead(sh)
}

// Remove drops a share from every list. If it is the head, the head is
// cleared and the next Update neither charges nor rotates anybody.
func (s *Scheduler) Remove(sh *Share) {
	s.check(sh, "remove")
	if sh == s.head {
		s.head = nil
	}
	if sh.ready {
		s.fills.remove(sh)
	}
	if sh.quota > 0 {
		s.dropClaim(sh)
	}
	sh.ready = false
}

// Ready makes an unready share runnable. It gets a fresh fill slice at the
// tail of the fill list and, with claim left, the head of its claim list.
func (s *Scheduler) Ready(sh *Share) {
	s.check(sh, "ready")
	if sh.ready {
		trap("ready: share %s is already ready", sh)
	}
	sh.ready = true
	sh.fill = s.fill
	s.fills.pushTail(sh)
	if sh.quota == 0 {
		return
	}
	s.unreadyClaims[sh.prio].remove(sh)
	if sh.claim > 0 {
		s.readyClaims[sh.prio].pushHead(sh)
	} else {
		s.readyClaims[sh.prio].pushTail(sh)
	}
}

// Unready takes a ready share out of the competition. It keeps its claim.
func (s *Scheduler) Unready(sh *Share) {
	s.check(sh, "unready")
	if !sh.ready {
		trap("unready: share %s is not ready", sh)
	}
	sh.ready = false
	s.fills.remove(sh)
	if sh.quota == 0 {
		return
	}
	s.readyClaims[sh.prio].remove(sh)
	s.unreadyClaims[sh.prio].pushTail(sh)
}

// SetQuota changes the quota of a share. Lowering it clamps the claim,
// zero revokes the claim altogether. A share granted quota joins the tail
// of its claim list with no claim and is served from the next round on.
func (s *Scheduler) SetQuota(sh *Share, q uint) {
	s.check(sh, "quota")
	switch {
	case sh.quota > 0 && q > 0:
		sh.claim = minUint(sh.claim, q)
	case sh.quota > 0:
		s.dropClaim(sh)
		sh.claim = 0
	case q > 0:
		s.admitClaim(sh)
		sh.claim = 0
		s.claimList(sh).pushTail(sh)
	}
	sh.quota = q
}

// Yield makes the current head give up the rest of its time at the next
// Update.
func (s *Scheduler) Yield() {
	s.headYields = true
	s.stat.Counter(stats.SchedYieldCounter).Inc(1)
}

// Update charges the head with the time it consumed since the last
// decision and picks the next head.
func (s *Scheduler) Update(elapsed uint) {
	s.stat.Counter(stats.SchedUpdateCounter).Inc(1)
	prev := s.head
	elapsed, unused := s.trimConsumption(elapsed)

	if s.head != nil {
		var charged *Share
		if s.headClaims {
			charged = s.headClaimed(unused)
		} else {
			s.headFilled(unused)
		}
		rolled := s.consumed(elapsed)
		if n := s.debts.advance(elapsed, s.credit); n > 0 {
			s.stat.Counter(stats.SchedReplenishMaturedCounter).Inc(int64(n))
		}
		if charged != nil && elapsed > 0 && !rolled && s.replenish {
			s.owe(charged, elapsed)
		}
	}

	switch {
	case s.claimForHead():
		s.stat.Counter(stats.SchedClaimHeadCounter).Inc(1)
	case s.fillForHead():
		s.stat.Counter(stats.SchedFillHeadCounter).Inc(1)
	default:
		s.setHead(s.idle, s.fill, false)
		s.stat.Counter(stats.SchedIdleHeadCounter).Inc(1)
	}

	if prev != s.head {
		s.stat.Counter(stats.SchedHeadSwitchCounter).Inc(1)
		log.WithFields(log.Fields{
			"share":    s.head,
			"prio":     s.head.prio,
			"quota":    s.HeadQuota(),
			"claims":   s.headClaims,
			"residual": s.residual,
		}).Debug("head switched")
	}
	s.stat.Histogram(stats.SchedHeadQuotaHistogram).Update(int64(s.HeadQuota()))
	s.stat.Gauge(stats.SchedResidualGauge).Update(int64(s.residual))
	s.stat.Gauge(stats.SchedReplenishOwedGauge).Update(int64(s.debts.owed()))
}

// trimConsumption limits elapsed to what the head was granted, which the
// round end may have cut below its slice. The unused time is left of the
// slice.
func (s *Scheduler) trimConsumption(elapsed uint) (uint, uint) {
	granted := s.HeadQuota()
	if s.headYields {
		s.headYields = false
		return granted, 0
	}
	elapsed = minUint(elapsed, granted)
	return elapsed, s.headQuota - elapsed
}

// headClaimed books the turn of a head that ran on its claim and returns
// it if the turn has to be replenished.
func (s *Scheduler) headClaimed(unused uint) *Share {
	h := s.head
	// a claim revoked during the turn, regranted quota waits for the next round
	if h.quota == 0 || h.claim == 0 {
		return nil
	}
	h.claim = minUint(unused, h.quota)
	if h.claim == 0 && h.ready {
		s.readyClaims[h.prio].toTail(h)
	}
	return h
}

func (s *Scheduler) headFilled(unused uint) {
	h := s.head
	if s.fills.head() != h {
		return
	}
	if unused > 0 {
		h.fill = unused
		return
	}
	h.fill = s.fill
	s.fills.headToTail()
}

// consumed charges the round and reports whether it rolled over.
func (s *Scheduler) consumed(elapsed uint) bool {
	if s.residual > elapsed {
		s.residual -= elapsed
		return false
	}
	s.nextRound()
	return true
}

func (s *Scheduler) nextRound() {
	s.residual = s.quota
	reset := func(sh *Share) { sh.claim = sh.quota }
	for p := range s.readyClaims {
		s.readyClaims[p].each(reset)
		s.unreadyClaims[p].each(reset)
	}
	s.stat.Counter(stats.SchedRoundCounter).Inc(1)
	log.WithFields(log.Fields{
		"quota":  s.quota,
		"claims": s.claims,
	}).Debug("next round")
}

// owe queues the time sh just consumed on its claim to be given back at
// the end of the round.
func (s *Scheduler) owe(sh *Share, consumed uint) {
	if sh.debt != 0 {
		s.debts.get(sh.debt).owed += consumed
		return
	}
	s.debts.push(sh, consumed, s.residual)
	s.stat.Counter(stats.SchedReplenishCreatedCounter).Inc(1)
}

func (s *Scheduler) forgive(sh *Share) {
	if s.debts.discard(sh) {
		s.stat.Counter(stats.SchedReplenishDiscardedCounter).Inc(1)
	}
}

func (s *Scheduler) credit(sh *Share, owed uint) {
	was := sh.claim
	sh.claim = minUint(sh.claim+owed, sh.quota)
	if was == 0 && sh.claim > 0 && sh.ready {
		s.readyClaims[sh.prio].toHead(sh)
	}
	log.WithFields(log.Fields{
		"share": sh,
		"owed":  owed,
		"claim": sh.claim,
	}).Debug("replenished")
}

func (s *Scheduler) claimForHead() bool {
	for p := len(s.readyClaims) - 1; p >= 0; p-- {
		sh := s.readyClaims[p].head()
		if sh == nil || sh.claim == 0 {
			continue
		}
		s.setHead(sh, sh.claim, true)
		return true
	}
	return false
}

func (s *Scheduler) fillForHead() bool {
	sh := s.filler.pick(s.fills)
	if sh == nil {
		return false
	}
	s.setHead(sh, sh.fill, false)
	return true
}

func (s *Scheduler) setHead(sh *Share, quota uint, claims bool) {
	s.head = sh
	s.headQuota = quota
	s.headClaims = claims
}

// ReadyCheck readies sh and reports whether the current head decision is
// outdated by it, meaning the caller should Update right away instead of
// waiting for the head to run out.
func (s *Scheduler) ReadyCheck(sh *Share) bool {
	s.Ready(sh)
	outdated := s.outdatedBy(sh)
	if outdated {
		s.stat.Counter(stats.SchedPreemptCounter).Inc(1)
	}
	return outdated
}

func (s *Scheduler) outdatedBy(sh *Share) bool {
	h := s.head
	if h == nil {
		return true
	}
	if sh.claim == 0 {
		return h == s.idle
	}
	if !s.headClaims {
		return true
	}
	if sh.prio != h.prio {
		return sh.prio > h.prio
	}
	l := h.claimNode.owner
	if l == nil {
		return true
	}
	for c := h; c != nil; c = l.next(c) {
		if c == sh {
			return false
		}
	}
	return true
}

// Head is the share to run, nil only between removing the head and the
// next Update.
func (s *Scheduler) Head() *Share { return s.head }

// HeadClaims tells whether the head runs on its claim rather than a fill.
func (s *Scheduler) HeadClaims() bool { return s.headClaims }

// HeadQuota is how long the head may run before the next Update. It never
// reaches past the end of the round.
func (s *Scheduler) HeadQuota() uint { return minUint(s.headQuota, s.residual) }

// Quota is the length of a round.
func (s *Scheduler) Quota() uint { return s.quota }

// Residual is the time left in the current round.
func (s *Scheduler) Residual() uint { return s.residual }

// Outstanding sums the claim time waiting to be replenished.
func (s *Scheduler) Outstanding() uint { return s.debts.owed() }

// Claims is the number of shares with quota.
func (s *Scheduler) Claims() int { return s.claims }
