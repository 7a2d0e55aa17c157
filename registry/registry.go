// Package registry maps component type names to the builders that
// construct them, so a circuit can be assembled declaratively (see
// package config) instead of by hand-wiring Go values.
package registry

import (
	"sync"

	"circuitgo/component"
)

// Builder constructs a freshly configured Component from a type-specific
// parameter map (typically decoded from JSON).
type Builder func(params map[string]any) (*component.Component, error)

var (
	mu       sync.RWMutex
	builders = map[string]Builder{}
)

// RegisterBuilder registers b under componentType. Components register
// themselves this way from their package's init, so importing a
// component package for its side effect is enough to make it buildable.
// Panics on an empty type name or a duplicate registration: both
// indicate a programming error, never a runtime condition to recover
// from.
func RegisterBuilder(componentType string, b Builder) {
	if componentType == "" {
		panic("registry: empty component type")
	}
	if b == nil {
		panic("registry: nil builder for " + componentType)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := builders[componentType]; exists {
		panic("registry: duplicate component type " + componentType)
	}
	builders[componentType] = b
}

// Lookup returns the builder registered for componentType, if any.
func Lookup(componentType string) (Builder, bool) {
	mu.RLock()
	defer mu.RUnlock()
	b, ok := builders[componentType]
	return b, ok
}

// Types returns every currently registered component type name, in no
// particular order. Intended for diagnostics (e.g. a console's "list
// available component types" command).
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(builders))
	for t := range builders {
		out = append(out, t)
	}
	return out
}
