package p3s

import "github.com/sugim0t0/P3S/metrics"

// HWModel wraps a Process as a parallel hardware core that runs on its own
// timeline, independent of any CPU's scheduling. Hardware time
// always flows: unlike a Task's restart, a HWModel's cycle counter advances
// by the full quantum every tick regardless of how much of it the core's
// automaton actually consumed.
type HWModel struct {
	Name     string
	ClockMHz int
	cycle    Cycle
	Core     *Process

	ticks  metrics.Counter
	cycles metrics.Histogram
}

// NewHWModel constructs a named hardware core running at clockMHz, driving
// the given Process.
func NewHWModel(name string, clockMHz int, core *Process) *HWModel {
	h := &HWModel{Name: name, ClockMHz: clockMHz, Core: core}
	h.UseMetrics(metrics.NewNoopProvider())
	return h
}

// Cycle returns the hardware model's current absolute cycle counter.
func (h *HWModel) Cycle() Cycle { return h.cycle }

// Run advances the core by one quantum of q cycles. It reports true
// iff the core became finished this tick; the cycle counter always
// advances by q, whatever the core's automaton left over.
func (h *HWModel) Run(q Cycle) (bool, error) {
	now := h.cycle
	_, err := h.Core.Restart(now, q)
	h.cycle += q
	h.ticks.Add(1)
	h.cycles.Record(float64(q))
	if err != nil {
		logRestartError(h.Core.Name, err)
		return false, &ModelError{Component: h.Name, Reason: "core restart failed", Cause: err}
	}
	return h.Core.Finished(), nil
}

// UseMetrics wires p as this hardware model's metrics backend.
func (h *HWModel) UseMetrics(p metrics.Provider) {
	h.ticks = p.Counter("p3s_hw_ticks_total", metrics.WithAttributes(map[string]string{"hw": h.Name}))
	h.cycles = p.Histogram("p3s_hw_cycles_per_tick", metrics.WithUnit("cycles"), metrics.WithAttributes(map[string]string{"hw": h.Name}))
}
