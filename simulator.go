package p3s

import (
	"fmt"

	"github.com/sugim0t0/P3S/metrics"
)

// Simulator orchestrates ticks across all HW models and the CPU until any
// model reports completion. The quantum Q is the simulator's
// accuracy parameter: the maximum cycles any single model consumes per
// tick.
type Simulator struct {
	Quantum Cycle

	cpu *CPUModel
	hw  []*HWModel

	metrics metrics.Provider
	ticks   int
}

// NewSimulator constructs a Simulator with accuracy quantum q and the
// default no-op metrics provider. Use WithMetrics to attach a real backend.
func NewSimulator(q Cycle) *Simulator {
	return &Simulator{Quantum: q, metrics: metrics.NewNoopProvider()}
}

// WithMetrics attaches p as the metrics backend for the Simulator and every
// CPU/HW model already or subsequently added to it.
func (s *Simulator) WithMetrics(p metrics.Provider) *Simulator {
	s.metrics = p
	if s.cpu != nil {
		s.cpu.UseMetrics(p)
	}
	for _, h := range s.hw {
		h.UseMetrics(p)
	}
	return s
}

// AddCPU attaches cpu to the simulator. A Simulator drives at most one
// CPU.
func (s *Simulator) AddCPU(cpu *CPUModel) {
	s.cpu = cpu
	cpu.UseMetrics(s.metrics)
}

// AddHW appends hw to the simulator's hardware-model list, run in
// declaration order every tick.
func (s *Simulator) AddHW(hw *HWModel) {
	s.hw = append(s.hw, hw)
	hw.UseMetrics(s.metrics)
}

// CPU returns the simulator's attached CPU model, or nil.
func (s *Simulator) CPU() *CPUModel { return s.cpu }

// HW returns the simulator's attached hardware models, in declaration
// order.
func (s *Simulator) HW() []*HWModel { return s.hw }

// validate performs the up-front ConfigError checks: at least one of
// (cpu, non-empty hw list) must be configured, and every Process reachable
// from the simulator must have an initial location set.
func (s *Simulator) validate() error {
	if s.cpu == nil && len(s.hw) == 0 {
		return &ConfigError{Component: "Simulator", Reason: "no CPU and no HW model configured"}
	}
	for _, h := range s.hw {
		if h.Core == nil || h.Core.CurrentLocation() == nil {
			return &ConfigError{Component: h.Name, Reason: "no initial location set"}
		}
	}
	if s.cpu != nil {
		for _, t := range s.cpu.tasks {
			if t.CurrentLocation() == nil {
				return &ConfigError{Component: t.Name, Reason: "no initial location set"}
			}
		}
		for _, i := range s.cpu.isrs {
			if i.CurrentLocation() == nil {
				return &ConfigError{Component: i.Name, Reason: "no initial location set"}
			}
		}
	}
	return nil
}

// Simulate runs the simulation loop: for each HW model in order,
// then the CPU, advance one quantum; halt as soon as any model reports
// finished. ConfigErrors are checked once up front and abort before the
// first tick; ModelErrors abort the tick that produced them.
func (s *Simulator) Simulate() error {
	if err := s.validate(); err != nil {
		log.Warnf("%v", err)
		return err
	}

	for {
		for _, h := range s.hw {
			finished, err := h.Run(s.Quantum)
			if err != nil {
				return err
			}
			s.ticks++
			if finished {
				logFinished(h.Cycle())
				return nil
			}
		}

		if s.cpu != nil {
			finished, err := s.cpu.Run(s.Quantum)
			if err != nil {
				return err
			}
			s.ticks++
			if finished {
				return nil
			}
		}
	}
}

// Summary reports a human-readable recap of the run: the number of model
// ticks run (one per HWModel or CPUModel Run call) and the final cycle of
// every attached model. It is purely additive — not
// part of the engine's control flow — and safe to call at any time,
// including mid-run or after an aborted Simulate.
func (s *Simulator) Summary() string {
	out := fmt.Sprintf("p3s: %d ticks", s.ticks)
	if s.cpu != nil {
		out += fmt.Sprintf(", cpu %q @ cycle %d", s.cpu.Name, s.cpu.Cycle())
	}
	for _, h := range s.hw {
		out += fmt.Sprintf(", hw %q @ cycle %d", h.Name, h.Cycle())
	}
	return out
}
