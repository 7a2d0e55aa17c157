package circuit_test

import (
	"testing"
	"time"

	"circuitgo/circuit"
	"circuitgo/component"
	"circuitgo/examples/components"
)

// Scenario 1 (spec.md §8): Counter → Inc(1) → Inc(2) → Inc(3) → Inc(4) →
// Inc(5) → Probe. After 100 ticks, Probe sees tick index + 15.
func TestScenarioSerialChain(t *testing.T) {
	ci := circuit.New()

	counter := components.NewCounter(1)
	mustAdd(t, ci, counter)

	prev := counter
	for _, step := range []int{1, 2, 3, 4, 5} {
		inc := components.NewIncrementer(step)
		mustAdd(t, ci, inc)
		mustConnect(t, ci, prev, 0, inc, 0)
		prev = inc
	}

	probe, readout := components.NewProbe(1)
	mustAdd(t, ci, probe)
	mustConnect(t, ci, prev, 0, probe, 0)

	for tick := 0; tick < 100; tick++ {
		if err := ci.Tick(); err != nil {
			t.Fatalf("Tick(%d): %v", tick, err)
		}
		got := readout.Last()[0]
		if want := tick + 15; got != want {
			t.Fatalf("tick %d: probe saw %v, want %d", tick, got, want)
		}
	}
}

// Scenario 2 (spec.md §8): Counter → {Inc(1..5)} → Probe(5), threadCount
// = 3. After tick t, probe sees (t+1, t+2, t+3, t+4, t+5).
func TestScenarioParallelFanOutFanIn(t *testing.T) {
	ci := circuit.New()

	counter := components.NewCounter(1)
	mustAdd(t, ci, counter)

	probe, readout := components.NewProbe(5)
	mustAdd(t, ci, probe)

	for i, step := range []int{1, 2, 3, 4, 5} {
		inc := components.NewIncrementer(step)
		mustAdd(t, ci, inc)
		mustConnect(t, ci, counter, 0, inc, 0)
		mustConnect(t, ci, inc, 0, probe, i)
	}

	ci.SetThreadCount(3)
	defer ci.SetThreadCount(0)

	for tick := 0; tick < 20; tick++ {
		if err := ci.Tick(); err != nil {
			t.Fatalf("Tick(%d): %v", tick, err)
		}
		ci.Sync()
		got := readout.Last()
		for i, step := range []int{1, 2, 3, 4, 5} {
			want := tick + step
			if got[i] != want {
				t.Fatalf("tick %d branch %d: got %v, want %d", tick, i, got[i], want)
			}
		}
	}
}

// Scenario 3 (spec.md §8): Counter fans to three chains of lengths 4, 2,
// 1 (each Inc(1)), merging at a 3-input probe. After tick t, probe sees
// (t+4, t+2, t+1).
func TestScenarioBranchesOfDifferentDepth(t *testing.T) {
	ci := circuit.New()

	counter := components.NewCounter(1)
	mustAdd(t, ci, counter)

	probe, readout := components.NewProbe(3)
	mustAdd(t, ci, probe)

	chain := func(depth, probeInput int) {
		prev := counter
		for i := 0; i < depth; i++ {
			inc := components.NewIncrementer(1)
			mustAdd(t, ci, inc)
			mustConnect(t, ci, prev, 0, inc, 0)
			prev = inc
		}
		mustConnect(t, ci, prev, 0, probe, probeInput)
	}
	chain(4, 0)
	chain(2, 1)
	chain(1, 2)

	for tick := 0; tick < 30; tick++ {
		if err := ci.Tick(); err != nil {
			t.Fatalf("Tick(%d): %v", tick, err)
		}
		got := readout.Last()
		want := []int{tick + 4, tick + 2, tick + 1}
		for i, w := range want {
			if got[i] != w {
				t.Fatalf("tick %d branch %d: got %v, want %d", tick, i, got[i], w)
			}
		}
	}
}

// Scenario 4 (spec.md §8): Counter → Adder.in0; Adder.out → Adder.in1
// and → Probe. Adder computes out = in0 + prev_out. After tick t
// (t=0 with prev_out=0), probe sees the running sum of 0..t.
func TestScenarioFeedback(t *testing.T) {
	ci := circuit.New()

	counter := components.NewCounter(1)
	adder := components.NewAdder()
	probe, readout := components.NewProbe(1)

	mustAdd(t, ci, counter)
	mustAdd(t, ci, adder)
	mustAdd(t, ci, probe)

	mustConnect(t, ci, counter, 0, adder, 0)
	mustConnect(t, ci, adder, 0, adder, 1)
	mustConnect(t, ci, adder, 0, probe, 0)

	sum := 0
	for tick := 0; tick < 10; tick++ {
		if err := ci.Tick(); err != nil {
			t.Fatalf("Tick(%d): %v", tick, err)
		}
		sum += tick
		got := readout.Last()[0]
		if got != sum {
			t.Fatalf("tick %d: probe saw %v, want running sum %d", tick, got, sum)
		}
	}
}

// Scenario 5 (spec.md §8): SporadicCounter produces only on some ticks;
// the downstream probe must never see a stale or zero value in place of
// a genuinely missing one — every recorded value it does see must
// strictly increase.
func TestScenarioSporadicOutputNeverStale(t *testing.T) {
	ci := circuit.New()

	sporadic := components.NewSporadicCounter(1)
	probe, readout := components.NewProbe(1)
	mustAdd(t, ci, sporadic)
	mustAdd(t, ci, probe)
	mustConnect(t, ci, sporadic, 0, probe, 0)

	last := -1
	sawAnyMissing := false
	for tick := 0; tick < 200; tick++ {
		if err := ci.Tick(); err != nil {
			t.Fatalf("Tick(%d): %v", tick, err)
		}
		v := readout.Last()[0]
		if v == nil {
			sawAnyMissing = true
			continue
		}
		got := v.(int)
		if got <= last {
			t.Fatalf("tick %d: probe saw %d, want strictly greater than last seen %d", tick, got, last)
		}
		last = got
	}
	if !sawAnyMissing {
		t.Fatalf("expected at least one tick with no output over 200 ticks")
	}
}

// Scenario 6 (spec.md §8): under auto-tick, live re-wiring (inserting a
// PassThrough between an existing producer and consumer) must not lose
// or duplicate values, and the thread count may be churned without
// crashing or corrupting output; GetThreadCount reports the last value
// set.
func TestScenarioLiveRewiringUnderAutoTick(t *testing.T) {
	ci := circuit.New()

	counter := components.NewCounter(1)
	probe, readout := components.NewProbe(1)
	mustAdd(t, ci, counter)
	mustAdd(t, ci, probe)
	mustConnect(t, ci, counter, 0, probe, 0)

	ci.StartAutoTick()
	time.Sleep(5 * time.Millisecond)

	pass := components.NewPassThrough()
	mustAdd(t, ci, pass)

	ci.PauseAutoTick()
	if ok, err := ci.DisconnectComponent(probe); !ok {
		t.Fatalf("DisconnectComponent: %v", err)
	}
	mustConnect(t, ci, counter, 0, pass, 0)
	mustConnect(t, ci, pass, 0, probe, 0)
	ci.ResumeAutoTick()

	time.Sleep(5 * time.Millisecond)

	for _, n := range []int{1, 2, 0, 4, 2, 3} {
		ci.SetThreadCount(n)
		if got := ci.ThreadCount(); got != n {
			t.Fatalf("ThreadCount() = %d, want %d", got, n)
		}
		time.Sleep(2 * time.Millisecond)
	}

	ci.StopAutoTick()

	hist := readout.History()
	if len(hist) == 0 {
		t.Fatalf("expected some ticks to have run")
	}
	last := -1
	for _, snap := range hist {
		v := snap[0]
		if v == nil {
			continue
		}
		got := v.(int)
		if got <= last {
			t.Fatalf("probe history not strictly increasing: saw %d after %d", got, last)
		}
		last = got
	}
}

// Ordering idempotence (spec.md §8): re-running Optimize with no
// intervening mutation produces the same series and parallel orders.
// Exercised indirectly: Optimize is called twice with no mutation in
// between (the second call finds nothing dirty), and the five ticks that
// follow still produce the chain's expected output in order.
func TestOrderingIdempotence(t *testing.T) {
	ci := circuit.New()

	counter := components.NewCounter(1)
	inc := components.NewIncrementer(1)
	probe, readout := components.NewProbe(1)
	mustAdd(t, ci, counter)
	mustAdd(t, ci, inc)
	mustAdd(t, ci, probe)
	mustConnect(t, ci, counter, 0, inc, 0)
	mustConnect(t, ci, inc, 0, probe, 0)

	if err := ci.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if err := ci.Optimize(); err != nil {
		t.Fatalf("second Optimize: %v", err)
	}

	for tick := 0; tick < 5; tick++ {
		if err := ci.Tick(); err != nil {
			t.Fatalf("Tick(%d): %v", tick, err)
		}
	}
	got := readout.History()
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %d snapshots, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i][0] != w {
			t.Fatalf("tick %d: got %v, want %d", i, got[i][0], w)
		}
	}
}

func mustAdd(t *testing.T, ci *circuit.Circuit, c *component.Component) {
	t.Helper()
	if ok, err := ci.AddComponent(c); !ok {
		t.Fatalf("AddComponent: %v", err)
	}
}

func mustConnect(t *testing.T, ci *circuit.Circuit, from *component.Component, fromOut int, to *component.Component, toIn int) {
	t.Helper()
	if ok, err := ci.ConnectOutToIn(from, fromOut, to, toIn); !ok {
		t.Fatalf("ConnectOutToIn: %v", err)
	}
}
