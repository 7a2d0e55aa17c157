package config

import (
	"testing"

	_ "circuitgo/examples/components"
)

const chainDescriptor = `{
  "bufferCount": 0,
  "threadCount": 0,
  "components": [
    {"id": "src", "type": "counter", "params": {"increment": 1}},
    {"id": "inc", "type": "incrementer", "params": {"increment": 5}},
    {"id": "probe", "type": "pass_through"}
  ],
  "wires": [
    {"from": "src", "fromOutput": 0, "to": "inc", "toInput": 0},
    {"from": "inc", "fromOutput": 0, "to": "probe", "toInput": 0}
  ]
}`

func TestDecodeRoundTrip(t *testing.T) {
	d, err := Decode([]byte(chainDescriptor))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(d.Components) != 3 || len(d.Wires) != 2 {
		t.Fatalf("got %d components, %d wires; want 3, 2", len(d.Components), len(d.Wires))
	}

	out, err := Encode(d)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d2, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode(Encode(d)): %v", err)
	}
	if len(d2.Components) != len(d.Components) || len(d2.Wires) != len(d.Wires) {
		t.Fatalf("round-trip mismatch: %+v vs %+v", d, d2)
	}
}

func TestBuildWiresAndTicks(t *testing.T) {
	d, err := Decode([]byte(chainDescriptor))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	ci, byID, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ci.ComponentCount() != 3 {
		t.Fatalf("ComponentCount = %d, want 3", ci.ComponentCount())
	}
	if _, ok := byID["probe"]; !ok {
		t.Fatalf("byID missing %q", "probe")
	}

	for i := 0; i < 3; i++ {
		if err := ci.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
}

func TestBuildRejectsUnknownType(t *testing.T) {
	d := Descriptor{Components: []ComponentSpec{{ID: "x", Type: "does_not_exist"}}}
	if _, _, err := Build(d); err == nil {
		t.Fatalf("expected error for unregistered component type")
	}
}

func TestBuildRejectsDanglingWire(t *testing.T) {
	d := Descriptor{
		Components: []ComponentSpec{{ID: "src", Type: "counter"}},
		Wires:      []WireSpec{{From: "src", To: "missing"}},
	}
	if _, _, err := Build(d); err == nil {
		t.Fatalf("expected error for wire to unknown id")
	}
}
