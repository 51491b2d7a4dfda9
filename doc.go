// Package p3s is a cycle-accurate discrete-event simulator for embedded
// multi-task systems running atop a preemptive priority-based RTOS,
// optionally coupled with one or more hardware accelerator models.
//
// Each task, interrupt service routine, or hardware core is expressed as a
// timed automaton: a Process walking a graph of Locations connected by
// guarded, delayed Transitions. Global time advances in fixed quanta
// ("accuracy cycles"); a CPUModel arbitrates among Tasks and ISRs via
// fixed-priority preemptive scheduling with explicit switch-delay
// accounting, while any number of HWModels run in parallel with the CPU on
// their own timelines. A Simulator drives all of them, one quantum at a
// time, until any model reports completion.
//
// The package defines the engine: the transition lifecycle, the scheduler,
// the simulation loop, and the Channel/Signal primitives automata use to
// synchronize. It does not define domain behavior — callers populate guard,
// sync, get_delay and update hooks on Transitions to model their own system.
package p3s
