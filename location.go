package p3s

// Location is a named state in an automaton. A Location owns an ordered
// sequence of outgoing Transitions; order is significant, since it is the
// fixed evaluation order used at selection time. A Terminal
// Location ends the owning Process when reached.
type Location struct {
	Name        string
	Terminal    bool
	Transitions []*Transition
}

// NewLocation constructs a named Location, terminal or not.
func NewLocation(name string, terminal bool) *Location {
	return &Location{Name: name, Terminal: terminal}
}

// AddTransition appends t to this Location's outgoing transitions. Append
// order is the selection order: transitions are scanned front-to-back and
// the first whose guard holds is chosen.
func (l *Location) AddTransition(t *Transition) {
	l.Transitions = append(l.Transitions, t)
}

// Transition carries the guard/sync/get_delay/update hooks, a target
// Location, an optional Channel binding with send/recv polarity, and an
// optional signal-destination Task. The four hooks are plain closures (no
// vtables, no subclassing) defaulting to the behaviors documented on
// NewTransition; callers override any subset by assigning the exported *Fn
// fields directly.
type Transition struct {
	Owner  *Process
	Target *Location

	// Channel, when non-nil, binds this transition to a channel operation.
	// Send true means this transition produces on Channel; false (the
	// default polarity) means it consumes. Only a receive binding affects
	// the default guard.
	Channel *Channel
	Send    bool

	// SigDst is a weak, non-owning reference to a Task this transition may
	// signal in its update() hook. The engine never
	// dereferences it itself — it exists so user update() hooks have
	// somewhere to store the intended signal target.
	SigDst *Task

	GuardFn    func(now Cycle) bool
	SyncFn     func()
	GetDelayFn func() int
	UpdateFn   func(now Cycle) bool

	// restCycle is the in-flight transition's remaining delay. It persists
	// across restart() calls: a transition can be mid-delay at quantum end,
	// and this counter is the continuation, never zeroed on a partial
	// commit.
	restCycle Cycle
}

// NewTransition constructs a Transition with the default hooks: guard
// honors only channel-receive readiness, sync/update are no-ops, get_delay
// is zero.
func NewTransition(owner *Process, channel *Channel, send bool, target *Location, sigDst *Task) *Transition {
	t := &Transition{
		Owner:   owner,
		Channel: channel,
		Send:    send,
		Target:  target,
		SigDst:  sigDst,
	}
	t.GuardFn = t.defaultGuard
	t.SyncFn = func() {}
	t.GetDelayFn = func() int { return 0 }
	t.UpdateFn = func(Cycle) bool { return false }
	return t
}

// defaultGuard is the built-in admission rule: a receive-polarity channel binding
// blocks until the channel is pending and has arrived; everything else
// (no channel, or a send-polarity channel) is unconditionally admissible.
func (t *Transition) defaultGuard(now Cycle) bool {
	if t.Channel != nil && !t.Send {
		return t.Channel.Ready(now)
	}
	return true
}

func (t *Transition) guard(now Cycle) bool {
	if t.GuardFn == nil {
		return t.defaultGuard(now)
	}
	return t.GuardFn(now)
}

func (t *Transition) sync() {
	if t.SyncFn != nil {
		t.SyncFn()
	}
}

func (t *Transition) getDelay() int {
	if t.GetDelayFn == nil {
		return 0
	}
	return t.GetDelayFn()
}

func (t *Transition) update(now Cycle) bool {
	if t.UpdateFn == nil {
		return false
	}
	return t.UpdateFn(now)
}
