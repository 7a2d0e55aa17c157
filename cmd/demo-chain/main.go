// Command demo-chain builds spec.md §8 scenario 1 (serial chain):
// Counter → Inc(1) → Inc(2) → Inc(3) → Inc(4) → Inc(5) → Probe, and
// prints the probe's reading after each of 100 ticks. The expected
// sequence is tick index + 15 (0+15, 1+15, 2+15, ...).
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
		log.Fatalf("demo-chain: AddComponent: %v", err)
	}
}

func main() {
	ci := circuit.New()

	counter := components.NewCounter(1)
	mustAdd(ci, counter)

	prev := counter
	for i, step := range []int{1, 2, 3, 4, 5} {
		inc := components.NewIncrementer(step)
		mustAdd(ci, inc)
		if ok, err := ci.ConnectOutToIn(prev, 0, inc, 0); !ok {
			log.Fatalf("demo-chain: connect inc[%d]: %v", i, err)
		}
		prev = inc
	}

	probe, readout := components.NewProbe(1, "sum")
	mustAdd(ci, probe)
	if ok, err := ci.ConnectOutToIn(prev, 0, probe, 0); !ok {
		log.Fatalf("demo-chain: connect probe: %v", err)
	}

	for t := 0; t < 100; t++ {
		if err := ci.Tick(); err != nil {
			log.Fatalf("demo-chain: Tick: %v", err)
		}
		fmt.Printf("tick %3d: probe sees %v\n", t, readout.Last())
	}
}
