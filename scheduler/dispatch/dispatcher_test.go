package dispatch

import (
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/quotasched/common/stats"
	"github.com/twitter/quotasched/scheduler/cpu"
	"github.com/twitter/quotasched/scheduler/domain"
)

func newScheduler(t *testing.T, stat stats.StatsReceiver) (*cpu.Scheduler, *cpu.Share) {
	cfg := cpu.DefaultConfig()
	cfg.Quota, cfg.Fill = 1000, 100
	idle := cpu.NewShare("idle", domain.MinPriority, 0)
	sched, err := cpu.NewScheduler(idle, cfg, stat)
	require.NoError(t, err)
	return sched, idle
}

func TestDispatcher_Preemption(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	timer := NewMockTimer(mockCtrl)
	ctx := NewMockContext(mockCtrl)

	sched, _ := newScheduler(t, nil)
	a := cpu.NewShare("a", 1, 300)
	b := cpu.NewShare("b", 3, 100)
	c := cpu.NewShare("c", 0, 0)
	sched.Insert(a)
	sched.Insert(b)
	sched.Insert(c)
	sched.Ready(a)
	d := NewDispatcher(sched, timer, ctx, nil)

	gomock.InOrder(
		ctx.EXPECT().Switch(a),
		timer.EXPECT().Arm(uint(300)),
		timer.EXPECT().Arm(uint(200)),
		ctx.EXPECT().Switch(b),
		timer.EXPECT().Arm(uint(100)),
		ctx.EXPECT().Switch(a),
		timer.EXPECT().Arm(uint(150)),
	)
	d.Start()
	d.Tick(100)
	assert.False(t, d.Wake(c, 10), "a fill does not preempt a claim")
	assert.True(t, d.Wake(b, 50))
	assert.Equal(t, b, d.Current())
	d.Yield(10)
	assert.Equal(t, a, d.Current())
	assert.Equal(t, uint(750), sched.Residual())
}

func TestDispatcher_SleepAndExit(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	timer := NewMockTimer(mockCtrl)
	ctx := NewMockContext(mockCtrl)

	reg := stats.NewFinagleStatsRegistry()
	stat := stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return reg })
	sched, idle := newScheduler(t, stat.Scope("sched"))
	a := cpu.NewShare("a", 1, 0)
	b := cpu.NewShare("b", 1, 0)
	for _, s := range []*cpu.Share{a, b} {
		sched.Insert(s)
		sched.Ready(s)
	}
	d := NewDispatcher(sched, timer, ctx, stat.Scope("dispatch"))

	gomock.InOrder(
		ctx.EXPECT().Switch(a),
		timer.EXPECT().Arm(uint(100)),
		ctx.EXPECT().Switch(idle),
		timer.EXPECT().Arm(uint(100)),
		ctx.EXPECT().Switch(b),
		timer.EXPECT().Arm(uint(100)),
		ctx.EXPECT().Switch(idle),
		timer.EXPECT().Arm(uint(100)),
	)
	d.Start()
	d.Sleep(b, 0)
	d.Sleep(a, 30)
	assert.True(t, d.Wake(b, 10))
	d.Exit(b, 40)
	assert.Equal(t, idle, d.Current())
	assert.Equal(t, uint(960), sched.Residual(), "the exited share is not charged")

	stats.VerifyStats("dispatch", reg, t, map[string]stats.Rule{
		"dispatch/" + stats.DispatchSwitchCounter:  {Checker: stats.Int64EqTest, Value: 4},
		"dispatch/" + stats.DispatchPreemptCounter: {Checker: stats.Int64EqTest, Value: 1},
		"dispatch/" + stats.DispatchTickCounter:    {Checker: stats.DoesNotExistTest},
		"sched/" + stats.SchedUpdateCounter:        {Checker: stats.Int64EqTest, Value: 4},
		"sched/" + stats.SchedPreemptCounter:       {Checker: stats.Int64EqTest, Value: 1},
	})
}

func TestDispatcher_ConcurrentTicks(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	timer := NewMockTimer(mockCtrl)
	ctx := NewMockContext(mockCtrl)
	timer.EXPECT().Arm(gomock.Any()).AnyTimes()
	ctx.EXPECT().Switch(gomock.Any()).AnyTimes()

	reg := stats.NewFinagleStatsRegistry()
	stat := stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return reg })
	sched, _ := newScheduler(t, stat.Scope("sched"))
	for _, s := range []*cpu.Share{cpu.NewShare("a", 2, 250), cpu.NewShare("b", 0, 0)} {
		sched.Insert(s)
		sched.Ready(s)
	}
	d := NewDispatcher(sched, timer, ctx, stat.Scope("dispatch"))
	d.Start()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				d.Tick(35)
			}
		}()
	}
	wg.Wait()

	stats.VerifyStats("concurrent", reg, t, map[string]stats.Rule{
		"dispatch/" + stats.DispatchTickCounter: {Checker: stats.Int64EqTest, Value: 400},
		"sched/" + stats.SchedUpdateCounter:     {Checker: stats.Int64EqTest, Value: 401},
	})
	assert.NotNil(t, d.Current())
}
