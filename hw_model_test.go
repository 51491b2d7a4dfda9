package p3s

import (
	"errors"
	"testing"
)

func TestHWModelCycleAlwaysAdvancesByQuantum(t *testing.T) {
	core := NewProcess("core")
	l0 := NewLocation("L0", false)
	core.AddLocation(l0, true)
	hw := NewHWModel("hw0", 50, core)

	if _, err := hw.Run(3); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if hw.Cycle() != 3 {
		t.Errorf("Cycle() = %d; want 3 (hardware time always flows)", hw.Cycle())
	}

	if _, err := hw.Run(7); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if hw.Cycle() != 10 {
		t.Errorf("Cycle() = %d; want 10 after a second tick of 7", hw.Cycle())
	}
}

func TestHWModelRunsDelayedTransitionToTerminal(t *testing.T) {
	// Two-location process, a single 10-cycle-delay
	// transition, Q=1 -> "Finished cycle: 10".
	core := NewProcess("core")
	l0 := NewLocation("L0", false)
	l1 := NewLocation("L1", true)
	core.AddLocation(l0, true)
	core.AddLocation(l1, false)
	tr := NewTransition(core, nil, false, l1, nil)
	tr.GetDelayFn = func() int { return 10 }
	l0.AddTransition(tr)

	hw := NewHWModel("hw0", 50, core)

	var finished bool
	var err error
	for i := 0; i < 10 && !finished; i++ {
		finished, err = hw.Run(1)
		if err != nil {
			t.Fatalf("Run returned error on tick %d: %v", i, err)
		}
	}

	if !finished {
		t.Fatalf("core never finished after 10 ticks of Q=1")
	}
	if hw.Cycle() != 10 {
		t.Errorf("Cycle() at finish = %d; want 10", hw.Cycle())
	}
}

func TestHWModelSurfacesFatalRestartError(t *testing.T) {
	core := NewProcess("core") // no initial location set
	hw := NewHWModel("hw0", 50, core)

	finished, err := hw.Run(1)
	if err == nil {
		t.Fatalf("Run with no current location returned nil error")
	}
	if finished {
		t.Errorf("Run() = true alongside a fatal error")
	}

	// The model-level error wraps the core's own failure as its cause.
	var modelErr *ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("Run error %v is not a *ModelError", err)
	}
	if modelErr.Component != "hw0" {
		t.Errorf("ModelError.Component = %q; want %q", modelErr.Component, "hw0")
	}
	if modelErr.Cause == nil {
		t.Errorf("ModelError.Cause = nil; want the core's underlying restart error")
	}
}
