// Command demo-config builds a circuit from a declarative JSON
// descriptor (circuitgo/config) and ticks it, printing every
// component's first output after each tick. Grounded on
// services/hal's "describe a device graph as JSON, bring it up" shape,
// adapted from HAL devices to circuit components.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"circuitgo/config"
	_ "circuitgo/examples/components"
)

func main() {
	path := flag.String("file", "", "path to a JSON circuit descriptor")
	ticks := flag.Int("ticks", 10, "number of ticks to run")
	flag.Parse()

	if *path == "" {
		log.Fatal("demo-config: -file is required")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("demo-config: read %s: %v", *path, err)
	}

	d, err := config.Decode(data)
	if err != nil {
		log.Fatalf("demo-config: decode: %v", err)
	}

	ci, byID, err := config.Build(d)
	if err != nil {
		log.Fatalf("demo-config: build: %v", err)
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for t := 0; t < *ticks; t++ {
		if err := ci.Tick(); err != nil {
			log.Fatalf("demo-config: tick %d: %v", t, err)
		}
		fmt.Printf("tick %d:\n", t)
		for _, id := range ids {
			comp := byID[id]
			if comp.OutputCount() == 0 {
				continue
			}
			fmt.Printf("  %s: %v\n", id, comp.OutputValue(0, 0))
		}
	}
}
