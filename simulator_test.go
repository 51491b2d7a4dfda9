package p3s

import "testing"

func TestSimulatorRejectsEmptyConfiguration(t *testing.T) {
	// No CPU, no HW model -> ConfigError, nothing runs.
	sim := NewSimulator(1)
	err := sim.Simulate()
	if err == nil {
		t.Fatalf("Simulate() = nil; want ConfigError for an empty simulation")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("Simulate() error = %T; want *ConfigError", err)
	}
}

func TestSimulatorRejectsMissingInitialLocation(t *testing.T) {
	core := NewProcess("core") // no AddLocation call
	sim := NewSimulator(1)
	sim.AddHW(NewHWModel("hw0", 50, core))

	err := sim.Simulate()
	if err == nil {
		t.Fatalf("Simulate() = nil; want ConfigError for a process with no initial location")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("Simulate() error = %T; want *ConfigError", err)
	}
}

func TestSimulatorRunsHWModelToCompletion(t *testing.T) {
	// Single terminal process, 10-cycle delay, Q=1 ->
	// simulation halts with the HW model's cycle at 10.
	core := NewProcess("core")
	l0 := NewLocation("L0", false)
	l1 := NewLocation("L1", true)
	core.AddLocation(l0, true)
	core.AddLocation(l1, false)
	tr := NewTransition(core, nil, false, l1, nil)
	tr.GetDelayFn = func() int { return 10 }
	l0.AddTransition(tr)

	hw := NewHWModel("hw0", 50, core)
	sim := NewSimulator(1)
	sim.AddHW(hw)

	if err := sim.Simulate(); err != nil {
		t.Fatalf("Simulate() returned error: %v", err)
	}
	if hw.Cycle() != 10 {
		t.Errorf("hw.Cycle() = %d; want 10", hw.Cycle())
	}
}

// producerConsumer builds a channel-latency fixture:
// a producer that sends on ch after a fixed delay and then parks (never
// finishing), and a consumer gated on the channel's arrival cycle. Returns
// fresh HWModels each call so TestSimulatorDeterminism can build two
// independent, identically-configured runs.
func producerConsumer(sendDelay Cycle) (producer, consumer *HWModel) {
	ch := NewChannel("wire")

	pCore := NewProcess("producer")
	pStart := NewLocation("P_start", false)
	pParked := NewLocation("P_parked", false) // never finishes: models a free-running producer
	pCore.AddLocation(pStart, true)
	pCore.AddLocation(pParked, false)
	trSend := NewTransition(pCore, ch, true, pParked, nil)
	trSend.UpdateFn = func(now Cycle) bool {
		ch.Send(1, now, sendDelay)
		return false
	}
	pStart.AddTransition(trSend)

	cCore := NewProcess("consumer")
	cStart := NewLocation("C_start", false)
	cDone := NewLocation("C_done", true)
	cCore.AddLocation(cStart, true)
	cCore.AddLocation(cDone, false)
	trRecv := NewTransition(cCore, ch, false, cDone, nil)
	trRecv.UpdateFn = func(Cycle) bool {
		ch.Recv()
		return false
	}
	cStart.AddTransition(trRecv)

	return NewHWModel("producer", 50, pCore), NewHWModel("consumer", 50, cCore)
}

func TestSimulatorChannelArrivalGatesConsumer(t *testing.T) {
	// The consumer's default receive guard must not
	// fire before the channel's stamped arrival cycle.
	producer, consumer := producerConsumer(3)
	sim := NewSimulator(1)
	sim.AddHW(producer)
	sim.AddHW(consumer)

	if err := sim.Simulate(); err != nil {
		t.Fatalf("Simulate() returned error: %v", err)
	}
	if !consumer.Core.Finished() {
		t.Fatalf("consumer never reached its terminal location")
	}
	if consumer.Cycle() != 4 {
		t.Errorf("consumer.Cycle() at finish = %d; want 4 (commits at cycle 3, HW time always advances by Q)", consumer.Cycle())
	}
	if producer.Core.Finished() {
		t.Errorf("producer reported finished; it should park indefinitely")
	}
}

func TestSimulatorDeterminism(t *testing.T) {
	// Replaying an identical configuration with the same quantum must reach
	// the exact same final state.
	p1, c1 := producerConsumer(3)
	sim1 := NewSimulator(1)
	sim1.AddHW(p1)
	sim1.AddHW(c1)
	if err := sim1.Simulate(); err != nil {
		t.Fatalf("first run: Simulate() returned error: %v", err)
	}

	p2, c2 := producerConsumer(3)
	sim2 := NewSimulator(1)
	sim2.AddHW(p2)
	sim2.AddHW(c2)
	if err := sim2.Simulate(); err != nil {
		t.Fatalf("second run: Simulate() returned error: %v", err)
	}

	if c1.Cycle() != c2.Cycle() {
		t.Errorf("consumer final cycle differs across runs: %d vs %d", c1.Cycle(), c2.Cycle())
	}
	if p1.Cycle() != p2.Cycle() {
		t.Errorf("producer final cycle differs across runs: %d vs %d", p1.Cycle(), p2.Cycle())
	}
}

func TestSimulatorSummaryReportsTicksAndModelCycles(t *testing.T) {
	core := NewProcess("core")
	l0 := NewLocation("L0", false)
	l1 := NewLocation("L1", true)
	core.AddLocation(l0, true)
	core.AddLocation(l1, false)
	l0.AddTransition(NewTransition(core, nil, false, l1, nil))
	hw := NewHWModel("hw0", 50, core)

	sim := NewSimulator(1)
	sim.AddHW(hw)
	if err := sim.Simulate(); err != nil {
		t.Fatalf("Simulate() returned error: %v", err)
	}

	summary := sim.Summary()
	if summary == "" {
		t.Fatalf("Summary() returned an empty string")
	}
	// One HW tick of Q=1: the zero-delay transition commits and HW time
	// advances to cycle 1.
	want := `p3s: 1 ticks, hw "hw0" @ cycle 1`
	if summary != want {
		t.Errorf("Summary() = %q; want %q", summary, want)
	}
}
