// Package wire implements the engine's wire table: the per-component
// list of incoming edges recorded by the destination.
package wire

import "circuitgo/internal/signalbus"

// Source is the interface a wire's endpoint uses to pull a value from
// the upstream component that owns it, without the wire package needing
// to import the component package (which in turn owns wire tables).
type Source interface {
	PullOutput(bufferNo, fromOutput, toInput int, dest *signalbus.SignalBus)
	PullOutputParallel(bufferNo, fromOutput, toInput int, dest *signalbus.SignalBus)
}

// Wire is an immutable triple: source component, source output index,
// destination input index. A wire is held only in the destination
// component's wire table.
type Wire struct {
	From       Source
	FromOutput int
	ToInput    int
}
