package p3s

// transSubstate tracks where an in-flight transition sits in the
// guard→sync→delay→update lifecycle. The lifecycle invariant holds by
// construction here: currentTrans == nil iff transSubstate == substateNone.
type transSubstate int

const (
	substateNone transSubstate = iota
	substateBeforeGetDelay
	substateBeforeUpdate
	substateAfterUpdate
)

// Process is an automaton executor: it drives a current Location, an
// optional in-flight Transition, and that transition's substate machine.
// Task and ISR specialize Process by embedding it and adding scheduling
// state.
type Process struct {
	Name string

	locations     []*Location
	currentLoc    *Location
	currentTrans  *Transition
	transSubstate transSubstate

	// committed counts transition commits over the process's lifetime. It
	// lets a caller (CPUModel, specifically) tell "restart returned the
	// full budget because nothing was selectable" apart from "restart
	// returned the full budget because a zero-delay transition committed
	// and yielded" without adding a new return value to Restart's
	// contract.
	committed int
}

// newProcess is the unexported constructor Task/ISR delegate to; NewProcess
// is its exported counterpart for plain (non-Task) automata such as an
// HW_Model's core.
func newProcess(name string) *Process {
	return &Process{Name: name}
}

// NewProcess constructs a named Process with no locations yet.
func NewProcess(name string) *Process {
	return newProcess(name)
}

// AddLocation adds loc to the process. The first Location added with
// isInitial set becomes the process's starting location; subsequent
// isInitial calls are ignored once a current location is set.
func (p *Process) AddLocation(loc *Location, isInitial bool) {
	p.locations = append(p.locations, loc)
	if isInitial && p.currentLoc == nil {
		p.currentLoc = loc
	}
}

// CurrentLocation returns the process's current Location, or nil if none has
// been set yet.
func (p *Process) CurrentLocation() *Location {
	return p.currentLoc
}

// Finished reports whether the process currently sits at a terminal
// location. This is a direct check against the current location rather than
// a sticky flag, so a process whose initial location is itself terminal is
// correctly finished before its first Restart call.
func (p *Process) Finished() bool {
	return p.currentLoc != nil && p.currentLoc.Terminal
}

// selectTransition is the selection phase: scan the current
// location's transitions in declared order, pick the first whose guard
// holds, run its sync() once, and make it the in-flight transition. Returns
// (nil, nil) when no transition is selectable — not an error, just nothing
// to do this call.
func (p *Process) selectTransition(now Cycle) (*Transition, error) {
	if p.currentLoc == nil {
		return nil, &ModelError{Component: p.Name, Reason: "restart invoked with no current location"}
	}
	for _, tr := range p.currentLoc.Transitions {
		if tr.guard(now) {
			tr.sync()
			p.currentTrans = tr
			p.transSubstate = substateBeforeGetDelay
			return tr, nil
		}
	}
	return nil, nil
}

// Restart advances the process for at most budget cycles beginning at now
// and returns the unused cycle count. -1 signals a fatal model error; 0
// means the quantum was fully consumed; a positive leftover means the
// process voluntarily yielded. Task
// overrides this (via method shadowing over the embedded Process) to add
// the event-flag preemption point; plain Processes
// — an HW_Model's core, most commonly — never stop early for an event, only
// for exhaustion, a dead end, or reaching a terminal location.
func (p *Process) Restart(now Cycle, budget Cycle) (Cycle, error) {
	return p.restartLoop(now, budget, false)
}

// restartLoop is the shared engine behind Process.Restart and Task.Restart.
// stopOnEvent selects the Task behavior: when true, a transition
// whose update() hook returns event=true ends the call immediately, even
// with cycles still in budget — the sole preemption point inside a task's
// own code.
func (p *Process) restartLoop(now Cycle, budget Cycle, stopOnEvent bool) (Cycle, error) {
	if p.currentLoc == nil {
		return -1, &ModelError{Component: p.Name, Reason: "restart invoked with no current location"}
	}

	runnable := budget
	for {
		// at is the timestamp reached so far within this call: cycles
		// already burned here advance it past the caller's now, so a
		// guard, update, or log line after a delay sees the cycle the
		// delay ended on, not the cycle the call started on.
		at := now + (budget - runnable)

		if p.currentTrans == nil {
			tr, err := p.selectTransition(at)
			if err != nil {
				return -1, err
			}
			if tr == nil {
				return runnable, nil
			}
		}

		trans := p.currentTrans
		if p.transSubstate == substateNone {
			return -1, &AssertionError{Invariant: "in-flight transition without a substate"}
		}

		if p.transSubstate == substateBeforeGetDelay {
			delay := trans.getDelay()
			if delay < 0 {
				return -1, &ModelError{Component: p.Name, Reason: "get_delay returned negative value"}
			}
			trans.restCycle = Cycle(delay)
			p.transSubstate = substateBeforeUpdate
		}

		spent := trans.restCycle.Burn(runnable)
		runnable -= spent
		if trans.restCycle > 0 {
			return 0, nil
		}

		at = now + (budget - runnable)
		event := trans.update(at)
		p.transSubstate = substateAfterUpdate
		p.currentLoc = trans.Target
		p.committed++
		logLocationChange(p.Name, at, trans.Target.Name)
		p.currentTrans = nil
		p.transSubstate = substateNone

		if p.currentLoc.Terminal {
			return runnable, nil
		}
		if stopOnEvent && event {
			return runnable, nil
		}
	}
}
