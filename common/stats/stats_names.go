package stats

/*
This file defines all the metrics being collected.   As new metrics are added please follow this pattern.
*/

const (
	/************************* CPU scheduler metrics **************************/
	/*
		number of scheduling decisions (calls to update)
	*/
	SchedUpdateCounter = "updateCounter"

	/*
		number of times the round quota was exhausted and every claim was restored
	*/
	SchedRoundCounter = "roundCounter"

	/*
		number of times the running share gave up the rest of its time
	*/
	SchedYieldCounter = "yieldCounter"

	/*
		number of decisions that selected a share spending claim budget
	*/
	SchedClaimHeadCounter = "claimHeadCounter"

	/*
		number of decisions that selected a share spending a fill slice
	*/
	SchedFillHeadCounter = "fillHeadCounter"

	/*
		number of decisions that fell back to the idle share
	*/
	SchedIdleHeadCounter = "idleHeadCounter"

	/*
		number of decisions that selected a different share than the previous one
	*/
	SchedHeadSwitchCounter = "headSwitchCounter"

	/*
		number of ready checks reporting that the current head is outdated
	*/
	SchedPreemptCounter = "preemptCounter"

	/*
		time granted to the selected head by each decision
	*/
	SchedHeadQuotaHistogram = "headQuotaHistogram"

	/*
		the remaining time in the current round
	*/
	SchedResidualGauge = "residualGauge"

	/*
		the number of shares holding a claim (quota > 0)
	*/
	SchedClaimsGauge = "claimsGauge"

	/*
		number of replenishment records queued
	*/
	SchedReplenishCreatedCounter = "replenishCreatedCounter"

	/*
		number of replenishment records that matured and credited their share
	*/
	SchedReplenishMaturedCounter = "replenishMaturedCounter"

	/*
		number of replenishment records dropped because their share was removed or lost its quota
	*/
	SchedReplenishDiscardedCounter = "replenishDiscardedCounter"

	/*
		the sum of quota owed by outstanding replenishment records
	*/
	SchedReplenishOwedGauge = "replenishOwedGauge"

	/************************* Dispatch metrics **************************/
	/*
		number of timer ticks handled
	*/
	DispatchTickCounter = "tickCounter"

	/*
		number of wake ups that triggered an immediate reschedule
	*/
	DispatchPreemptCounter = "wakePreemptCounter"

	/*
		number of context switches performed
	*/
	DispatchSwitchCounter = "switchCounter"

	/************************* Replay metrics **************************/
	/*
		number of trace lines replayed
	*/
	ReplayLineCounter = "lineCounter"

	/*
		number of expectations in a trace the schedule did not meet
	*/
	ReplayMismatchCounter = "mismatchCounter"
)
