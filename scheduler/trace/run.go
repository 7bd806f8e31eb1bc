package trace

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/quotasched/common/stats"
	"github.com/twitter/quotasched/scheduler/cpu"
	"github.com/twitter/quotasched/scheduler/domain"
)

// Mismatch is an expectation of a script the scheduler did not meet.
type Mismatch struct {
	Line int
	Op   string
	Want string
	Got  string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("line %d: %s: want %s, got %s", m.Line, m.Op, m.Want, m.Got)
}

type Result struct {
	// Checks counts the expectations evaluated, updates and ready checks.
	Checks     int
	Mismatches []Mismatch
	Final      cpu.Snapshot
}

func (r *Result) OK() bool { return len(r.Mismatches) == 0 }

type replay struct {
	sched  *cpu.Scheduler
	script *Script
	shares map[string]*cpu.Share
	res    *Result
	stat   stats.StatsReceiver
}

// Run replays script on a fresh scheduler. Expectations the scheduler
// misses are collected in the result, misuse of the scheduler by the
// script (readying a ready share, touching a share before creating it)
// stops the replay with an error.
func Run(script *Script, cfg cpu.Config, stat stats.StatsReceiver) (res *Result, err error) {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	idle := cpu.NewShare(IdleID, domain.MinPriority, 0)
	sched, err := cpu.NewScheduler(idle, cfg, stat.Scope("sched"))
	if err != nil {
		return nil, err
	}
	r := &replay{
		sched:  sched,
		script: script,
		shares: map[string]*cpu.Share{},
		res:    &Result{},
		stat:   stat.Scope("replay"),
	}

	line := 0
	defer func() {
		if p := recover(); p != nil {
			msg := fmt.Sprint(p)
			if e, ok := p.(*log.Entry); ok {
				msg = e.Message
			}
			res, err = nil, errors.Errorf("line %d: scheduler trapped: %s", line, msg)
		}
	}()
	for _, op := range script.Ops {
		if op.Line != line {
			line = op.Line
			r.stat.Counter(stats.ReplayLineCounter).Inc(1)
		}
		if err := r.apply(op); err != nil {
			return nil, errors.Wrapf(err, "line %d", op.Line)
		}
	}
	r.res.Final = sched.Snapshot()
	log.WithFields(log.Fields{
		"checks":     r.res.Checks,
		"mismatches": len(r.res.Mismatches),
	}).Info("replay done")
	return r.res, nil
}

func (r *replay) apply(op Op) error {
	if op.Kind == Yield {
		r.sched.Yield()
		return nil
	}
	if op.Kind == Create {
		if _, ok := r.shares[op.Share]; ok {
			return errors.Errorf("share %s is already created", op.Share)
		}
		def := r.script.Shares[op.Share]
		sh := cpu.NewShare(def.ID, def.Priority, def.Quota)
		r.sched.Insert(sh)
		r.shares[op.Share] = sh
		return nil
	}
	if op.Kind == Update {
		r.update(op)
		return nil
	}

	sh, ok := r.shares[op.Share]
	if !ok {
		return errors.Errorf("share %s is not created", op.Share)
	}
	switch op.Kind {
	case Destroy:
		r.sched.Remove(sh)
		delete(r.shares, op.Share)
	case Activate:
		r.sched.Ready(sh)
	case Suspend:
		r.sched.Unready(sh)
	case Quota:
		r.sched.SetQuota(sh, op.Args[0])
	case Outdated, Current:
		want := op.Kind == Outdated
		got := r.sched.ReadyCheck(sh)
		r.expect(op, fmt.Sprintf("outdated %v", want), fmt.Sprintf("outdated %v", got))
	}
	return nil
}

func (r *replay) update(op Op) {
	r.sched.Update(op.Args[0])
	want := fmt.Sprintf("time %d head %s quota %d", op.Args[1], op.Share, op.Args[2])
	got := fmt.Sprintf("time %d head %s quota %d",
		r.sched.Quota()-r.sched.Residual(), r.sched.Head(), r.sched.HeadQuota())
	r.expect(op, want, got)
}

func (r *replay) expect(op Op, want, got string) {
	r.res.Checks++
	if want == got {
		return
	}
	m := Mismatch{Line: op.Line, Op: op.String(), Want: want, Got: got}
	r.res.Mismatches = append(r.res.Mismatches, m)
	r.stat.Counter(stats.ReplayMismatchCounter).Inc(1)
	log.WithField("line", op.Line).Debug(m.String())
}
