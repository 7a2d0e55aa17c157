// Command demo-feedback builds spec.md §8 scenario 4 (feedback loop):
// Counter → Adder.in0; Adder.out → Adder.in1 and → Probe. Adder computes
// out = in0 + prev_out, so the probe should see the running sum of
// 0..t: 0, 1, 3, 6, 10, 15, ... Feedback loops are only legal without
// thread-count scheduling (spec.md §5), so this circuit stays in the
// default bufferCount=0, threadCount=0 synchronous mode.
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
		log.Fatalf("demo-feedback: AddComponent: %v", err)
	}
}

func main() {
	ci := circuit.New()

	counter := components.NewCounter(1)
	adder := components.NewAdder()
	probe, readout := components.NewProbe(1, "sum")

	mustAdd(ci, counter)
	mustAdd(ci, adder)
	mustAdd(ci, probe)

	if ok, err := ci.ConnectOutToIn(counter, 0, adder, 0); !ok {
		log.Fatalf("demo-feedback: connect counter->adder.in0: %v", err)
	}
	if ok, err := ci.ConnectOutToIn(adder, 0, adder, 1); !ok {
		log.Fatalf("demo-feedback: connect adder.out->adder.in1: %v", err)
	}
	if ok, err := ci.ConnectOutToIn(adder, 0, probe, 0); !ok {
		log.Fatalf("demo-feedback: connect adder.out->probe: %v", err)
	}

	for t := 0; t < 10; t++ {
		if err := ci.Tick(); err != nil {
			log.Fatalf("demo-feedback: Tick: %v", err)
		}
		fmt.Printf("tick %2d: running sum = %v\n", t, readout.Last())
	}
}
