package dispatch

//go:generate mockgen -source=dispatcher.go -package=dispatch -destination=dispatcher_mock.go

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/quotasched/common/stats"
	"github.com/twitter/quotasched/scheduler/cpu"
)

// Timer raises the next scheduling interrupt once quota time has passed.
type Timer interface {
	Arm(quota uint)
}

// Context loads the execution context of a share onto the CPU.
type Context interface {
	Switch(share *cpu.Share)
}

// Dispatcher connects a Scheduler to the timer and context switching of
// one CPU. Each entry point takes the time consumed since the previous
// decision, updates the scheduler and then switches to its head and arms
// the timer for the head's quota.
//
// A Dispatcher is safe for concurrent use, entries are serialized.
type Dispatcher struct {
	mu      sync.Mutex
	sched   *cpu.Scheduler
	timer   Timer
	ctx     Context
	current *cpu.Share
	stat    stats.StatsReceiver
}

func NewDispatcher(sched *cpu.Scheduler, timer Timer, ctx Context, stat stats.StatsReceiver) *Dispatcher {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Dispatcher{sched: sched, timer: timer, ctx: ctx, stat: stat}
}

// Start loads the current head without charging anybody.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reschedule(0)
}

// Tick handles a timer interrupt.
func (d *Dispatcher) Tick(elapsed uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stat.Counter(stats.DispatchTickCounter).Inc(1)
	d.reschedule(elapsed)
}

// Wake readies share. The running share is only preempted if the decision
// that selected it is outdated, reports whether it was.
func (d *Dispatcher) Wake(share *cpu.Share, elapsed uint) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.sched.ReadyCheck(share) {
		return false
	}
	d.stat.Counter(stats.DispatchPreemptCounter).Inc(1)
	d.reschedule(elapsed)
	return true
}

// Yield hands the rest of the current share's time to the next one.
func (d *Dispatcher) Yield(elapsed uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sched.Yield()
	d.reschedule(elapsed)
}

// Sleep unreadies share, rescheduling if it is the one running.
func (d *Dispatcher) Sleep(share *cpu.Share, elapsed uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sched.Unready(share)
	if share == d.current {
		d.reschedule(elapsed)
	}
}

// Exit removes share, rescheduling if it is the one running.
func (d *Dispatcher) Exit(share *cpu.Share, elapsed uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sched.Remove(share)
	if share == d.current {
		d.current = nil
		d.reschedule(elapsed)
	}
}

// Current is the share loaded on the CPU.
func (d *Dispatcher) Current() *cpu.Share {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Dispatcher) reschedule(elapsed uint) {
	d.sched.Update(elapsed)
	if head := d.sched.Head(); head != d.current {
		log.WithFields(log.Fields{
			"from": d.current,
			"to":   head,
		}).Debug("switching context")
		d.ctx.Switch(head)
		d.current = head
		d.stat.Counter(stats.DispatchSwitchCounter).Inc(1)
	}
	d.timer.Arm(d.sched.HeadQuota())
}
