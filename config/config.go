// Package config decodes a declarative circuit descriptor (components by
// registered type + params, and explicit wires) and builds a live
// circuit.Circuit from it via the registry package. Grounded on the
// teacher's services/hal/config JSON-descriptor-to-live-object pattern
// (device list + params, turned into running HAL workers).
package config

import (
	"encoding/json"
	"fmt"

	"circuitgo/circuit"
	"circuitgo/component"
	"circuitgo/errcode"
	"circuitgo/registry"
)

// ComponentSpec declares one component: an id unique within the
// descriptor, a registered type name, and type-specific params.
type ComponentSpec struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// WireSpec declares one connection between two components named by
// ComponentSpec.ID.
type WireSpec struct {
	From       string `json:"from"`
	FromOutput int    `json:"fromOutput"`
	To         string `json:"to"`
	ToInput    int    `json:"toInput"`
}

// Descriptor is the top-level circuit document.
type Descriptor struct {
	BufferCount int             `json:"bufferCount"`
	ThreadCount int             `json:"threadCount"`
	Components  []ComponentSpec `json:"components"`
	Wires       []WireSpec      `json:"wires"`
}

// Decode parses a JSON circuit descriptor.
func Decode(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, errcode.Wrap("config.Decode", errcode.ErrInvalidConfig, err)
	}
	return d, nil
}

// Build constructs every component in d via its registered builder, adds
// them all to a fresh circuit.Circuit, applies the wire list, and sets
// the buffer/thread configuration — in that order, so wiring happens
// before the scheduler topology is sized. Returns the circuit plus a
// lookup from ComponentSpec.ID to the live component, so callers (e.g.
// a console or a test) can reach named components directly.
func Build(d Descriptor) (*circuit.Circuit, map[string]*component.Component, error) {
	ci := circuit.New()
	byID := make(map[string]*component.Component, len(d.Components))

	for _, spec := range d.Components {
		if _, exists := byID[spec.ID]; exists {
			return nil, nil, errcode.New("config.Build", errcode.ErrInvalidConfig,
				fmt.Sprintf("duplicate component id %q", spec.ID))
		}
		builder, ok := registry.Lookup(spec.Type)
		if !ok {
			return nil, nil, errcode.New("config.Build", errcode.ErrInvalidConfig,
				fmt.Sprintf("unregistered component type %q for id %q", spec.Type, spec.ID))
		}
		comp, err := builder(spec.Params)
		if err != nil {
			return nil, nil, errcode.Wrap("config.Build", errcode.ErrInvalidConfig, err)
		}
		if ok, err := ci.AddComponent(comp); !ok {
			return nil, nil, err
		}
		byID[spec.ID] = comp
	}

	for _, w := range d.Wires {
		from, ok := byID[w.From]
		if !ok {
			return nil, nil, errcode.New("config.Build", errcode.ErrInvalidConfig,
				fmt.Sprintf("wire references unknown component id %q", w.From))
		}
		to, ok := byID[w.To]
		if !ok {
			return nil, nil, errcode.New("config.Build", errcode.ErrInvalidConfig,
				fmt.Sprintf("wire references unknown component id %q", w.To))
		}
		if ok, err := ci.ConnectOutToIn(from, w.FromOutput, to, w.ToInput); !ok {
			return nil, nil, err
		}
	}

	ci.SetBufferCount(d.BufferCount)
	ci.SetThreadCount(d.ThreadCount)

	return ci, byID, nil
}

// Encode renders d back to indented JSON, the round-trip counterpart to
// Decode (tested in config_test.go, matching the teacher's
// services/hal/config round-trip test style).
func Encode(d Descriptor) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
