package p3s

// SignalIDNoWait is the sentinel wait-id meaning "not waiting on anything".
const SignalIDNoWait = -1

// SignalInitPri is the sentinel priority a Signal's waitPriority holds while
// no task is waiting on it.
const SignalInitPri TaskPriority = -1

// Signal is a per-task OS-signal mailbox: a task WAITs on a signal id and is
// parked until some other task or ISR SETs that same id, at which point it
// becomes READY again. A Signal belongs to exactly one Task; it
// is not a broadcast primitive.
type Signal struct {
	waitID       int
	waitPriority TaskPriority
}

// WaitSignal parks the task on sigID: the task moves to WAITING, its signal
// records which id it is waiting for and the task's priority at that moment
// (SetSignal does not consult the recorded priority), and — when the task is
// the CPU's currently running task — the CPU relinquishes it so scheduling
// can pick a new task this same tick. waitCost is charged against the task's
// next run via SetSwitchDelay; the engine itself never invents this cost.
func (t *Task) WaitSignal(sigID int, waitCost Cycle) {
	t.Signal.waitID = sigID
	t.Signal.waitPriority = t.Priority
	t.State = TaskWaiting
	t.SetSwitchDelay(waitCost)
	if t.CPU != nil && t.CPU.currentTask == t {
		t.CPU.currentTask = nil
	}
}

// SetSignal delivers sigID to dst. If dst is not currently waiting on
// exactly sigID, this is a no-op and SetSignal returns false. Otherwise dst
// transitions WAITING→READY (the preemption trigger) and SetSignal
// returns true. SetSignal itself picks which of the two caller-supplied
// costs to charge dst: setPlusWaitCost when dst outranks the task currently
// running on dst's CPU (dst is about to run in its place), setCost
// otherwise, including when dst has no CPU or that CPU has no current task.
// The engine does not hard-code either cost value.
func SetSignal(dst *Task, sigID int, setCost Cycle, setPlusWaitCost Cycle) bool {
	if dst.Signal.waitID != sigID {
		return false
	}
	dst.Signal.waitID = SignalIDNoWait
	dst.Signal.waitPriority = SignalInitPri
	dst.State = TaskReady

	cost := setCost
	if dst.CPU != nil && dst.CPU.currentTask != nil && dst.Priority > dst.CPU.currentTask.Priority {
		cost = setPlusWaitCost
	}
	dst.SetSwitchDelay(cost)
	return true
}
