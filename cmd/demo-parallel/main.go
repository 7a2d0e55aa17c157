// Command demo-parallel builds spec.md §8 scenario 2 (parallel
// fan-out/fan-in): Counter → {Inc(1), Inc(2), Inc(3), Inc(4), Inc(5)} →
// Probe(5 inputs), with threadCount = 3. After each tick t the probe
// should see (t+1, t+2, t+3, t+4, t+5).
package main

import (
	"fmt"
	"log"

	"circuitgo/circuit"
	"circuitgo/component"
	"circuitgo/examples/components"
)

func mustAdd(ci *circuit.Circuit, c *component.Component) {
	if ok, err := ci.AddComponent(c); !ok {
		log.Fatalf("demo-parallel: AddComponent: %v", err)
	}
}

func main() {
	ci := circuit.New()

	counter := components.NewCounter(1)
	mustAdd(ci, counter)

	probe, readout := components.NewProbe(5, "b1", "b2", "b3", "b4", "b5")
	mustAdd(ci, probe)

	for i, step := range []int{1, 2, 3, 4, 5} {
		inc := components.NewIncrementer(step)
		mustAdd(ci, inc)
		if ok, err := ci.ConnectOutToIn(counter, 0, inc, 0); !ok {
			log.Fatalf("demo-parallel: connect counter->inc[%d]: %v", i, err)
		}
		if ok, err := ci.ConnectOutToIn(inc, 0, probe, i); !ok {
			log.Fatalf("demo-parallel: connect inc[%d]->probe: %v", i, err)
		}
	}

	ci.SetThreadCount(3)

	for t := 0; t < 20; t++ {
		if err := ci.Tick(); err != nil {
			log.Fatalf("demo-parallel: Tick: %v", err)
		}
		ci.Sync()
		fmt.Printf("tick %2d: probe sees %v\n", t, readout.Last())
	}
}
