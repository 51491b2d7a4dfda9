package p3s

// Channel is a single-slot, unidirectional value carrier with
// arrival-delayed visibility: send() marks data pending and stamps the
// cycle at which it becomes visible; recv() takes it. A second send before a
// recv overwrites the pending value — this is not an error, it models a
// shared wire where only the latest value matters.
type Channel struct {
	Name        string
	pending     bool
	sentAtCycle Cycle
	data        any
}

// NewChannel creates an empty, named Channel.
func NewChannel(name string) *Channel {
	return &Channel{Name: name}
}

// Send stores data, marks the channel pending, and stamps the cycle at
// which it becomes visible to a receiver as now+delay. Overwrites any
// previously unreceived value.
func (c *Channel) Send(data any, now Cycle, delay Cycle) {
	c.data = data
	c.pending = true
	c.sentAtCycle = now + delay
}

// Recv clears the pending flag and returns the stored value. Calling Recv
// when nothing is pending returns the zero value (nil); guarded transitions
// never reach this state because the default receive guard (Ready) rejects
// it first.
func (c *Channel) Recv() any {
	c.pending = false
	return c.data
}

// Ready reports whether a receiver may observe the channel's value at cycle
// now: the channel must be pending, and simulator time must have reached the
// stamped arrival cycle.
func (c *Channel) Ready(now Cycle) bool {
	return c.pending && c.sentAtCycle <= now
}

// Pending reports whether a value is currently unreceived, irrespective of
// arrival delay.
func (c *Channel) Pending() bool {
	return c.pending
}
