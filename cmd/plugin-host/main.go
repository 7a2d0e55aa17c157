// Command plugin-host loads a Component from a Go plugin shared object,
// wires its single output into a Probe, and ticks the pair a few times,
// printing whatever the plugin produces. Grounded on
// original_source/example/oscillator-plugin's host harness and spec.md
// §6's plugin-loading contract.
package main

import (
	"flag"
	"fmt"
	"log"

	"circuitgo/circuit"
	"circuitgo/examples/components"
	"circuitgo/plugin"
)

func main() {
	path := flag.String("plugin", "", "path to a -buildmode=plugin shared object exporting NewComponent")
	ticks := flag.Int("ticks", 10, "number of ticks to run")
	flag.Parse()

	if *path == "" {
		log.Fatal("plugin-host: -plugin is required")
	}

	p, err := plugin.Load(*path)
	if !p.IsLoaded() {
		log.Fatalf("plugin-host: failed to load %s: %v", *path, err)
	}

	source, err := p.Create()
	if err != nil {
		log.Fatalf("plugin-host: Create: %v", err)
	}

	probe, readout := components.NewProbe(1, "in")

	ci := circuit.New()
	if ok, err := ci.AddComponent(source); !ok {
		log.Fatalf("plugin-host: AddComponent(source): %v", err)
	}
	if ok, err := ci.AddComponent(probe); !ok {
		log.Fatalf("plugin-host: AddComponent(probe): %v", err)
	}
	if ok, err := ci.ConnectOutToIn(source, 0, probe, 0); !ok {
		log.Fatalf("plugin-host: ConnectOutToIn: %v", err)
	}

	for i := 0; i < *ticks; i++ {
		if err := ci.Tick(); err != nil {
			log.Fatalf("plugin-host: Tick: %v", err)
		}
		fmt.Printf("tick %d: %v\n", i, readout.Last())
	}
}
