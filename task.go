package p3s

// TaskState is the scheduling state of a Task or ISR.
type TaskState int

const (
	// TaskInactive is the state of a Task that has not yet been admitted to
	// scheduling (engine-internal; Tasks are constructed READY, ISRs
	// WAITING — no public constructor path currently yields INACTIVE, but
	// the state exists for completeness and future reconfiguration
	// hooks).
	TaskInactive TaskState = iota
	TaskWaiting
	TaskReady
	TaskRunning
)

func (s TaskState) String() string {
	switch s {
	case TaskInactive:
		return "INACTIVE"
	case TaskWaiting:
		return "WAITING"
	case TaskReady:
		return "READY"
	case TaskRunning:
		return "RUNNING"
	default:
		return "UNKNOWN"
	}
}

// TaskPriority is a signed priority: higher values preempt lower ones.
// REALTIME is reserved for ISRs and is always strictly greater than any
// ordinary Task priority.
type TaskPriority int

const (
	PriorityIdle TaskPriority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityRealtime
)

// Task is a Process specialization that participates in CPU scheduling: it
// adds a priority, a scheduling state, a per-task Signal mailbox, and a
// non-owning back-reference to the CPU it is scheduled on. The Signal holds
// the id the task is currently waiting on; once that signal is set the id
// is reset to SignalIDNoWait, so the last-waited id is not kept.
type Task struct {
	Process

	Priority TaskPriority
	State    TaskState
	Signal   Signal
	CPU      *CPUModel

	// pendingSwitchDelay accumulates the cycles a WaitSignal/SetSignal hook
	// has charged against this task's next run; CPUModel.Run drains it
	// before letting the task actually execute. The engine never
	// hard-codes wait/set signal costs — user code writes them here.
	pendingSwitchDelay Cycle
}

// NewTask constructs a Task with the given name and priority, initial state
// READY.
func NewTask(name string, priority TaskPriority) *Task {
	t := &Task{
		Priority: priority,
		State:    TaskReady,
	}
	t.Process = *newProcess(name)
	t.Signal.waitID = SignalIDNoWait
	t.Signal.waitPriority = SignalInitPri
	return t
}

// SetSwitchDelay accumulates n cycles into the task's pending switch-delay
// counter; CPUModel.Run consults and drains this before the task next
// executes.
func (t *Task) SetSwitchDelay(n Cycle) {
	t.pendingSwitchDelay += n
}

// drainSwitchDelay burns as much of the pending switch delay as budget
// allows and returns the cycles actually charged.
func (t *Task) drainSwitchDelay(budget Cycle) Cycle {
	spent := t.pendingSwitchDelay.Burn(budget)
	return spent
}

// Restart drives one quantum of this Task's automaton through the shared
// Process engine, with stop-on-event selected: a transition whose
// update() hook returns true hands control back to the scheduler
// immediately after commit, even if runnable cycles remain. This method
// shadows the embedded Process.Restart — Go's interface dispatch picks this
// one for any *Task value.
func (t *Task) Restart(now Cycle, budget Cycle) (Cycle, error) {
	return t.Process.restartLoop(now, budget, true)
}

// ISR is a Task specialization representing an interrupt service routine. It
// is armed only while parked at its init location, is re-armed by its
// CPUModel (via Rearm) on completion instead of terminating, and typically
// runs at REALTIME priority.
type ISR struct {
	Task
	InitLoc *Location
}

// NewISR constructs an ISR with the given name and priority, initial state
// WAITING. Call SetInitLocation once the ISR's initial Location has
// been added via AddLocation.
func NewISR(name string, priority TaskPriority) *ISR {
	i := &ISR{
		Task: *NewTask(name, priority),
	}
	i.State = TaskWaiting
	return i
}

// SetInitLocation records the ISR's armed/rearm location.
func (i *ISR) SetInitLocation(loc *Location) {
	i.InitLoc = loc
}

// Armed reports whether the ISR is parked at its init location and at least
// one of its outgoing transitions' guard holds at cycle now — the
// interrupt-arming predicate the CPU consults each tick.
func (i *ISR) Armed(now Cycle) bool {
	if i.currentLoc != i.InitLoc {
		return false
	}
	for _, tr := range i.InitLoc.Transitions {
		if tr.guard(now) {
			return true
		}
	}
	return false
}

// Rearm resets the ISR back to its init location in the WAITING state. ISR
// "completion" is never a true terminal-location exit: the owning CPUModel
// calls Rearm whenever the ISR's automaton finishes.
func (i *ISR) Rearm() {
	i.currentLoc = i.InitLoc
	i.currentTrans = nil
	i.transSubstate = substateNone
	i.State = TaskWaiting
}
