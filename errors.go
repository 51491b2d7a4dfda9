package p3s

import "fmt"

// ConfigError reports a malformed simulation configuration caught at
// Simulator.Simulate entry: no initial location on some Process, or neither
// a CPU nor any HW model attached. ConfigErrors abort before the first tick
// runs.
type ConfigError struct {
	Component string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("p3s: config error in %s: %s", e.Component, e.Reason)
}

// ModelError reports a violation surfaced while a model is ticking: a
// get_delay() hook returning a negative value, or restart() invoked with no
// current location. ModelErrors abort the enclosing model's tick; the
// Simulator halts but does not panic.
//
// A process-level ModelError is a leaf (the fatal condition is detected
// directly, Cause is nil); HWModel and CPUModel wrap a failing process's
// error in a ModelError of their own with Cause set, so callers can
// errors.As/errors.Is their way down to the root failure.
type ModelError struct {
	Component string
	Reason    string
	Cause     error
}

func (e *ModelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("p3s: model error in %s: %s: %v", e.Component, e.Reason, e.Cause)
	}
	return fmt.Sprintf("p3s: model error in %s: %s", e.Component, e.Reason)
}

func (e *ModelError) Unwrap() error { return e.Cause }

// AssertionError reports a violated core invariant: two tasks simultaneously
// RUNNING on one CPU, or an in-flight transition with no substate. These
// indicate an engine bug (or a caller poking at exported state it shouldn't),
// never a malformed user model.
type AssertionError struct {
	Invariant string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("p3s: assertion failed: %s", e.Invariant)
}
