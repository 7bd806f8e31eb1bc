/*
Package cpu schedules CPU shares for the execution time of one CPU.

A Share is a schedulable context with a priority and a quota. Time is handed
out in rounds of Config.Quota. Within a round, shares with quota ("claims")
are scheduled strictly by priority, each up to its quota, round robin among
equal priorities. Time no claim is due for goes to the ready shares in a
round robin of Config.Fill long slices ("fills"). If nothing is ready the
idle share runs.

The Scheduler is not safe for concurrent use. One instance is owned by the
kernel entry path of a CPU and every call runs to completion before the next
one starts. Misuse (readying a ready share, touching the idle share, a share
ending up in two lists) is a programming error and panics through logrus
rather than returning an error.

The timer layer drives the scheduler:

	sched.Update(elapsed)         // time consumed since the last decision
	run(sched.Head(), sched.HeadQuota())

and thread management tells it about share life cycle changes with Insert,
Remove, Ready, Unready and SetQuota.
*/
package cpu
