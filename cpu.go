package p3s

import (
	"github.com/sugim0t0/P3S/internal/readyset"
	"github.com/sugim0t0/P3S/metrics"
)

// CPUModel schedules ISRs then Tasks on one CPU, with switch-delay
// accounting. Tasks and ISRs are each held in descending-priority
// order with insertion-order tie-breaking; CPUModel.AddTask/AddISR
// maintain that order on insert.
//
// Switch-delay accounting lives on the Task/ISR
// itself: WaitSignal and SetSignal (signal.go) charge a task's own
// pendingSwitchDelay, and CPUModel drains that charge — via
// drainSwitchDelay — before it lets the task actually run, whether it is
// about to be promoted fresh or is resuming after a preemption.
type CPUModel struct {
	Name     string
	ClockMHz int
	cycle    Cycle

	tasks       []*Task
	currentTask *Task

	isrs       []*ISR
	currentISR *ISR

	metrics metricsBundle
}

// NewCPUModel constructs a named CPU running at clockMHz with empty task and
// ISR queues. Metrics default to a no-op provider; Simulator or a direct
// caller may attach a real one via UseMetrics.
func NewCPUModel(name string, clockMHz int) *CPUModel {
	c := &CPUModel{Name: name, ClockMHz: clockMHz}
	c.UseMetrics(metrics.NewNoopProvider())
	return c
}

// AddTask inserts t in descending-priority order, appended after any
// existing task of equal priority.
func (c *CPUModel) AddTask(t *Task) {
	t.CPU = c
	idx := len(c.tasks)
	for i, existing := range c.tasks {
		if t.Priority > existing.Priority {
			idx = i
			break
		}
	}
	c.tasks = append(c.tasks, nil)
	copy(c.tasks[idx+1:], c.tasks[idx:])
	c.tasks[idx] = t
}

// AddISR inserts i in descending-priority order, same tie-breaking rule as
// AddTask.
func (c *CPUModel) AddISR(i *ISR) {
	i.CPU = c
	idx := len(c.isrs)
	for j, existing := range c.isrs {
		if i.Priority > existing.Priority {
			idx = j
			break
		}
	}
	c.isrs = append(c.isrs, nil)
	copy(c.isrs[idx+1:], c.isrs[idx:])
	c.isrs[idx] = i
}

// Cycle returns the CPU's current absolute cycle counter.
func (c *CPUModel) Cycle() Cycle { return c.cycle }

// CurrentTask returns the Task presently RUNNING on this CPU, or nil.
func (c *CPUModel) CurrentTask() *Task { return c.currentTask }

// Run advances the CPU by one quantum of q cycles, ISR phase fully
// preceding Task phase within that same shared budget. It reports true
// iff a Task finished during this quantum (simulation end), false if the
// quantum was exhausted without one finishing.
func (c *CPUModel) Run(q Cycle) (bool, error) {
	if err := c.checkRunningInvariant(); err != nil {
		return false, err
	}
	remaining, err := c.runISRPhase(q)
	if err != nil {
		return false, err
	}
	finished, err := c.runTaskPhase(remaining)
	c.metrics.ticks.Add(1)
	return finished, err
}

// checkRunningInvariant verifies that at most one Task and at most one ISR
// are RUNNING on this CPU between scheduler passes. A violation means the
// engine (or a caller poking at exported state) broke scheduling, never a
// malformed user model.
func (c *CPUModel) checkRunningInvariant() error {
	running := 0
	for _, t := range c.tasks {
		if t.State == TaskRunning {
			running++
		}
	}
	if running > 1 {
		return &AssertionError{Invariant: "two tasks simultaneously RUNNING on one CPU"}
	}
	running = 0
	for _, i := range c.isrs {
		if i.State == TaskRunning {
			running++
		}
	}
	if running > 1 {
		return &AssertionError{Invariant: "two ISRs simultaneously RUNNING on one CPU"}
	}
	return nil
}

// runISRPhase is the ISR half of a tick, run against budget q: service a RUNNING
// ISR, promote a READY one, or arm a WAITING one whose interrupt(now)
// predicate holds. It returns the budget left over for the Task phase.
func (c *CPUModel) runISRPhase(q Cycle) (Cycle, error) {
	now := c.cycle
	budget := q

	for _, isr := range c.isrs {
		switch isr.State {
		case TaskRunning:
			spent, err := c.restartISR(isr, now, budget)
			return budget - spent, err
		case TaskReady:
			spent, err := c.promoteAndRunISR(isr, now, budget)
			return budget - spent, err
		case TaskWaiting:
			if isr.Armed(now) {
				c.preemptForISR()
				log.Debugf("@%s C:%d : ISR armed, preempting", isr.Name, now)
				c.metrics.preemptions.Add(1)
				spent, err := c.promoteAndRunISR(isr, now, budget)
				return budget - spent, err
			}
		}
	}
	return budget, nil
}

// promoteAndRunISR drains isr's own pending switch delay (if any) against
// budget, then promotes and restarts it with whatever budget remains. It
// returns the total cycles consumed (drain + restart).
func (c *CPUModel) promoteAndRunISR(isr *ISR, now Cycle, budget Cycle) (Cycle, error) {
	var drained Cycle
	if isr.pendingSwitchDelay > 0 {
		drained = isr.drainSwitchDelay(budget)
		budget -= drained
		now += drained
		c.cycle += drained
		if isr.pendingSwitchDelay > 0 {
			return drained, nil
		}
	}
	isr.State = TaskRunning
	c.currentISR = isr
	spent, err := c.restartISR(isr, now, budget)
	return drained + spent, err
}

// preemptForISR demotes any currently RUNNING ISR or Task to READY to make
// way for a newly-armed, higher-priority ISR.
func (c *CPUModel) preemptForISR() {
	if c.currentISR != nil {
		c.currentISR.State = TaskReady
		c.currentISR = nil
	}
	if c.currentTask != nil {
		c.currentTask.State = TaskReady
		c.metrics.runningGauge.Add(-1)
		c.currentTask = nil
	}
}

// restartISR runs isr's automaton for up to budget cycles and, if it
// finishes, re-arms it: for an ISR, "finished" is a rearm, never a terminal
// exit. It returns the cycles actually consumed.
func (c *CPUModel) restartISR(isr *ISR, now Cycle, budget Cycle) (Cycle, error) {
	if budget <= 0 {
		return 0, nil
	}
	leftover, err := isr.Restart(now, budget)
	if err != nil {
		logRestartError(isr.Name, err)
		return 0, &ModelError{Component: c.Name, Reason: "ISR restart failed", Cause: err}
	}
	spent := budget - leftover
	c.cycle += spent
	if isr.Finished() {
		isr.Rearm()
		c.currentISR = nil
	}
	return spent, nil
}

// runTaskPhase is the task half of a tick: loop until the quantum is
// exhausted, servicing the current (or newly promoted) Task and sweeping
// for a due preemption after every restart.
func (c *CPUModel) runTaskPhase(q Cycle) (bool, error) {
	now := c.cycle
	runnable := q

	for runnable > 0 {
		if c.currentTask == nil {
			next := c.firstReadyTask()
			if next == nil {
				c.cycle += runnable
				return false, nil
			}
			if next.pendingSwitchDelay > 0 {
				spent := next.drainSwitchDelay(runnable)
				runnable -= spent
				now += spent
				c.cycle += spent
				if next.pendingSwitchDelay > 0 {
					return false, nil
				}
			}
			next.State = TaskRunning
			c.currentTask = next
			c.metrics.runningGauge.Add(1)
		}

		cur := c.currentTask
		prevCommitted := cur.committed
		leftover, err := cur.Restart(now, runnable)
		if err != nil {
			logRestartError(cur.Name, err)
			return false, &ModelError{Component: c.Name, Reason: "task restart failed", Cause: err}
		}
		spent := runnable - leftover
		runnable = leftover
		c.cycle += spent
		now = c.cycle
		progressed := cur.committed != prevCommitted

		if cur.Finished() {
			logFinished(now)
			c.metrics.runningGauge.Add(-1)
			c.currentTask = nil
			return true, nil
		}

		// A WaitSignal in cur's update() hook has already relinquished it.
		if c.currentTask == nil {
			c.metrics.runningGauge.Add(-1)
		}

		c.sweepPreemption()

		// Nothing committed: the task is genuinely stuck (no selectable
		// transition), not yielding after a zero-delay commit. Nothing
		// more can happen on this CPU for the rest of the quantum.
		if !progressed && c.currentTask != nil {
			break
		}
	}

	c.cycle += runnable
	return false, nil
}

// sweepPreemption runs the post-restart priority sweep: scan tasks in priority
// order; if a higher-priority task is READY ahead of the RUNNING one, the
// RUNNING task is demoted and current_task cleared so the next loop
// iteration drains that new task's own switch delay before it runs.
func (c *CPUModel) sweepPreemption() {
	for _, t := range c.tasks {
		switch t.State {
		case TaskRunning:
			return
		case TaskReady:
			if c.currentTask != nil {
				c.currentTask.State = TaskReady
				c.metrics.runningGauge.Add(-1)
				c.metrics.preemptions.Add(1)
				c.metrics.switchDelay.Record(float64(t.pendingSwitchDelay))
			}
			c.currentTask = nil
			return
		}
	}
}

// firstReadyTask returns the highest-priority READY task, or nil if none is
// ready. c.tasks is already held in descending-priority
// order (AddTask), so index order is priority order: marking each READY
// task's index into a readyset.Set and taking First() is the bitmap
// "lowest-index wins" trick, index 0 being the highest priority. The set is
// rebuilt from the task states on every call, so the call as a whole is a
// pass over all tasks; only the final lookup is O(1).
// readyset.Set is 64 bits wide; a CPU with more than 64 tasks falls back to
// a plain scan, which picks the same task.
func (c *CPUModel) firstReadyTask() *Task {
	if len(c.tasks) > 64 {
		for _, t := range c.tasks {
			if t.State == TaskReady {
				return t
			}
		}
		return nil
	}

	var ready readyset.Set
	for i, t := range c.tasks {
		if t.State == TaskReady {
			ready.Mark(i)
		}
	}
	idx, ok := ready.First()
	if !ok {
		return nil
	}
	return c.tasks[idx]
}

// metricsBundle bundles the instruments CPUModel.Run records.
type metricsBundle struct {
	ticks        metrics.Counter
	runningGauge metrics.UpDownCounter
	preemptions  metrics.Counter
	switchDelay  metrics.Histogram
}

func newMetricsBundle(name string, p metrics.Provider) metricsBundle {
	return metricsBundle{
		ticks:        p.Counter("p3s_cpu_ticks_total", metrics.WithAttributes(map[string]string{"cpu": name})),
		runningGauge: p.UpDownCounter("p3s_cpu_running_tasks", metrics.WithAttributes(map[string]string{"cpu": name})),
		preemptions:  p.Counter("p3s_cpu_preemptions_total", metrics.WithAttributes(map[string]string{"cpu": name})),
		switchDelay:  p.Histogram("p3s_cpu_switch_delay_cycles", metrics.WithUnit("cycles"), metrics.WithAttributes(map[string]string{"cpu": name})),
	}
}

// UseMetrics wires p as this CPU's metrics backend. Simulator calls this for
// every attached CPU when constructed with a non-default Provider; direct
// callers may call it themselves for a standalone CPUModel.
func (c *CPUModel) UseMetrics(p metrics.Provider) {
	c.metrics = newMetricsBundle(c.Name, p)
}
