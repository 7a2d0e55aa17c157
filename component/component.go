// Package component implements the engine's processing node: a fixed
// number of typed input/output ports, a wire table of incoming edges,
// per-buffer reference-counted output state, and the series/parallel
// tick algorithms that pull, process, and publish one value per port
// per tick.
package component

import (
	"circuitgo/errcode"
	"circuitgo/internal/signalbus"
	"circuitgo/internal/wire"
)

// ProcessOrder controls whether a component's tick bodies run strictly
// one buffer at a time (InOrder) or may overlap across buffer slots
// (OutOfOrder).
type ProcessOrder int

const (
	InOrder ProcessOrder = iota
	OutOfOrder
)

// Processor is the user-supplied leaf logic a Component wraps. Inputs
// arrive already filled for this tick; outputs start cleared. A missing
// input value is valid and means no data was produced upstream this
// tick; the implementation should leave the corresponding output cell
// untouched to signal the same downstream.
type Processor interface {
	Process(inputs, outputs *signalbus.SignalBus)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(inputs, outputs *signalbus.SignalBus)

func (f ProcessorFunc) Process(inputs, outputs *signalbus.SignalBus) { f(inputs, outputs) }

// Source is the subset of wire.Source a *Component satisfies; it exists
// so ConnectInput and the Disconnect* methods can compare a wire's
// recorded source against a candidate *Component by identity.
type Source = wire.Source

type refCounter struct {
	count int
	total int
	ready *flag
}

// Component owns per-buffer input/output buses, its wire table,
// per-output reference counters and ready flags, and a user-supplied
// Processor. Neither this package nor the circuit package stops one
// Component from being added to more than one Circuit:
// circuit.AddComponent rejects only a component already in that same
// circuit.
type Component struct {
	proc         Processor
	processOrder ProcessOrder

	bufferCount int

	inputBuses  []signalbus.SignalBus
	outputBuses []signalbus.SignalBus

	refs [][]refCounter // refs[buffer][output]

	inputWires []wire.Wire

	releaseFlags []*flag

	inputNames  []string
	outputNames []string

	scanPosition int
}

// New creates a Component wrapping proc, with a single buffer slot
// ready for configuration of its port counts.
func New(proc Processor, order ProcessOrder) *Component {
	c := &Component{proc: proc, processOrder: order, scanPosition: -1}
	c.SetBufferCount(1, 0)
	return c
}

// SetInputCount declares the component's input port count, with
// optional display names. Must be called before the component is wired
// into a circuit.
func (c *Component) SetInputCount(n int, names ...string) {
	c.inputNames = names
	for i := range c.inputBuses {
		c.inputBuses[i].SetSignalCount(n)
	}
	c.inputWires = make([]wire.Wire, 0, n)
}

// SetOutputCount declares the component's output port count, with
// optional display names.
func (c *Component) SetOutputCount(n int, names ...string) {
	c.outputNames = names
	for i := range c.outputBuses {
		c.outputBuses[i].SetSignalCount(n)
	}
	for i := range c.refs {
		grown := make([]refCounter, n)
		copy(grown, c.refs[i])
		for j := len(c.refs[i]); j < n; j++ {
			grown[j].ready = newFlag(false)
		}
		c.refs[i] = grown
	}
}

// InputCount returns the declared input port count.
func (c *Component) InputCount() int { return c.inputBuses[0].SignalCount() }

// OutputCount returns the declared output port count.
func (c *Component) OutputCount() int { return c.outputBuses[0].SignalCount() }

// OutputValue returns output port i's current payload on bufferNo, or
// nil if empty. Intended for introspection between ticks (a console's
// "print" command, a demo harness) — not part of the tick path itself,
// and only safe to call while the circuit is paused or stopped, since
// nothing here synchronizes against a worker mid-tick.
func (c *Component) OutputValue(bufferNo, i int) any {
	return c.outputBuses[bufferNo].Value(i)
}

// InputName returns the display name of input port i, or "" if unnamed.
func (c *Component) InputName(i int) string {
	if i < len(c.inputNames) {
		return c.inputNames[i]
	}
	return ""
}

// OutputName returns the display name of output port i, or "" if unnamed.
func (c *Component) OutputName(i int) string {
	if i < len(c.outputNames) {
		return c.outputNames[i]
	}
	return ""
}

// ConnectInput records a new wire from fromComponent's fromOutput into
// this component's toInput, replacing any wire already at toInput. It
// returns false (with an errcode.Code describing why) if the indices are
// out of range or the exact same wire already exists.
func (c *Component) ConnectInput(from *Component, fromOutput, toInput int) (bool, error) {
	if fromOutput < 0 || toInput < 0 || fromOutput >= from.OutputCount() || toInput >= c.InputCount() {
		return false, errcode.New("Component.ConnectInput", errcode.ErrOutOfRange, "port index out of range")
	}

	for i, w := range c.inputWires {
		if w.ToInput == toInput {
			if w.From == Source(from) && w.FromOutput == fromOutput {
				return false, errcode.New("Component.ConnectInput", errcode.ErrDuplicateWire, "identical wire already exists")
			}
			from2, ok := w.From.(*Component)
			if ok {
				from2.decRefs(w.FromOutput)
			}
			c.inputWires = append(c.inputWires[:i], c.inputWires[i+1:]...)
			break
		}
	}

	c.inputWires = append(c.inputWires, wire.Wire{From: from, FromOutput: fromOutput, ToInput: toInput})
	from.incRefs(fromOutput)

	return true, nil
}

// DisconnectInput removes the wire feeding toInput, if any.
func (c *Component) DisconnectInput(toInput int) {
	for i, w := range c.inputWires {
		if w.ToInput == toInput {
			if from, ok := w.From.(*Component); ok {
				from.decRefs(w.FromOutput)
			}
			c.inputWires = append(c.inputWires[:i], c.inputWires[i+1:]...)
			return
		}
	}
}

// DisconnectInputFrom removes every wire whose source is from.
func (c *Component) DisconnectInputFrom(from *Component) {
	kept := c.inputWires[:0]
	for _, w := range c.inputWires {
		if w.From == Source(from) {
			from.decRefs(w.FromOutput)
			continue
		}
		kept = append(kept, w)
	}
	c.inputWires = kept
}

// DisconnectAllInputs removes every incoming wire.
func (c *Component) DisconnectAllInputs() {
	for _, w := range c.inputWires {
		if from, ok := w.From.(*Component); ok {
			from.decRefs(w.FromOutput)
		}
	}
	c.inputWires = c.inputWires[:0]
}

// SetBufferCount resizes per-buffer state to bufferCount (clamped to at
// least 1) and marks startBuffer as the first in-order owner. Output
// reference-count totals are preserved across the resize.
func (c *Component) SetBufferCount(bufferCount, startBuffer int) {
	if bufferCount <= 0 {
		bufferCount = 1
	}
	if startBuffer >= bufferCount {
		startBuffer = 0
	}

	inputCount := 0
	outputCount := 0
	if len(c.inputBuses) > 0 {
		inputCount = c.inputBuses[0].SignalCount()
	}
	if len(c.outputBuses) > 0 {
		outputCount = c.outputBuses[0].SignalCount()
	}

	prevRefTotals := make([]int, outputCount)
	if len(c.refs) > 0 {
		for j := 0; j < outputCount && j < len(c.refs[0]); j++ {
			prevRefTotals[j] = c.refs[0][j].total
		}
	}

	c.inputBuses = make([]signalbus.SignalBus, bufferCount)
	c.outputBuses = make([]signalbus.SignalBus, bufferCount)
	c.releaseFlags = make([]*flag, bufferCount)
	c.refs = make([][]refCounter, bufferCount)

	for i := 0; i < bufferCount; i++ {
		c.inputBuses[i].SetSignalCount(inputCount)
		c.outputBuses[i].SetSignalCount(outputCount)
		c.releaseFlags[i] = newFlag(i == startBuffer)

		c.refs[i] = make([]refCounter, outputCount)
		for j := 0; j < outputCount; j++ {
			c.refs[i][j].ready = newFlag(false)
			c.refs[i][j].total = prevRefTotals[j]
		}
	}

	c.bufferCount = bufferCount
}

// BufferCount returns the current per-component buffer count.
func (c *Component) BufferCount() int { return len(c.inputBuses) }

// TickSeries runs one serial-mode tick on the given buffer slot: pull
// inputs, clear outputs, then run Process (subject to the in-order
// release-flag wait when bufferCount > 1).
func (c *Component) TickSeries(bufferNo int) {
	inputBus := &c.inputBuses[bufferNo]
	outputBus := &c.outputBuses[bufferNo]

	inputBus.ClearAllValues()

	for _, w := range c.inputWires {
		w.From.PullOutput(bufferNo, w.FromOutput, w.ToInput, inputBus)
	}

	outputBus.ClearAllValues()

	if c.bufferCount != 1 && c.processOrder == InOrder {
		c.releaseFlags[bufferNo].WaitAndClear()
		c.proc.Process(inputBus, outputBus)
		c.releaseNextThread(bufferNo)
	} else {
		c.proc.Process(inputBus, outputBus)
	}
}

// TickParallel runs one layered-mode tick on the given buffer slot:
// pull inputs (waiting on each upstream output's ready flag), run
// Process, then set the ready flag on every output this component
// actually feeds.
func (c *Component) TickParallel(bufferNo int) {
	inputBus := &c.inputBuses[bufferNo]
	outputBus := &c.outputBuses[bufferNo]

	inputBus.ClearAllValues()
	outputBus.ClearAllValues()

	for _, w := range c.inputWires {
		w.From.PullOutputParallel(bufferNo, w.FromOutput, w.ToInput, inputBus)
	}

	if c.bufferCount != 1 && c.processOrder == InOrder {
		c.releaseFlags[bufferNo].WaitAndClear()
		c.proc.Process(inputBus, outputBus)
		c.releaseNextThread(bufferNo)
	} else {
		c.proc.Process(inputBus, outputBus)
	}

	for i := range c.refs[bufferNo] {
		if c.refs[bufferNo][i].total != 0 {
			c.refs[bufferNo][i].ready.Set()
		}
	}
}

// ScanSeries performs a depth-first post-order traversal: sources are
// appended to ordered before this component is. Components already
// visited this scan (scanPosition != -1) are skipped.
func (c *Component) ScanSeries(ordered *[]*Component) {
	if c.scanPosition != -1 {
		return
	}
	c.scanPosition = 0

	for _, w := range c.inputWires {
		if from, ok := w.From.(*Component); ok {
			from.ScanSeries(ordered)
		}
	}

	*ordered = append(*ordered, c)
}

// ScanParallel assigns this component to layers[depth], where depth is
// one more than the deepest predecessor's depth. scanPosition reports
// this component's resulting depth back to the caller.
func (c *Component) ScanParallel(layers *[][]*Component, scanPosition *int) {
	if c.scanPosition != -1 {
		*scanPosition = c.scanPosition
		return
	}
	c.scanPosition = 0
	*scanPosition = 0

	for _, w := range c.inputWires {
		if from, ok := w.From.(*Component); ok {
			from.ScanParallel(layers, scanPosition)
			*scanPosition++
			if *scanPosition > c.scanPosition {
				c.scanPosition = *scanPosition
			}
		}
	}

	for c.scanPosition >= len(*layers) {
		*layers = append(*layers, nil)
	}
	(*layers)[c.scanPosition] = append((*layers)[c.scanPosition], c)
	*scanPosition = c.scanPosition
}

// EndScan resets the transient scan position left behind by ScanSeries
// or ScanParallel.
func (c *Component) EndScan() {
	c.scanPosition = -1
}

// Sources returns the distinct set of components this component pulls
// input values from. Intended for graph analysis outside this package
// (e.g. cycle detection); the tick algorithms use inputWires directly.
func (c *Component) Sources() []*Component {
	var out []*Component
	seen := make(map[*Component]bool, len(c.inputWires))
	for _, w := range c.inputWires {
		from, ok := w.From.(*Component)
		if !ok || seen[from] {
			continue
		}
		seen[from] = true
		out = append(out, from)
	}
	return out
}

// PullOutput implements wire.Source for series mode: copy-or-move the
// value at fromOutput on bufferNo into dest at toInput, per the
// reference-counted fan-out rule. A missing value leaves dest (already
// cleared) untouched.
func (c *Component) PullOutput(bufferNo, fromOutput, toInput int, dest *signalbus.SignalBus) {
	src := c.outputBuses[bufferNo].Cell(fromOutput)
	if !src.HasValue() {
		return
	}

	ref := &c.refs[bufferNo][fromOutput]
	if ref.total == 1 {
		dest.Cell(toInput).MoveValueFrom(src)
		return
	}
	ref.count++
	if ref.count != ref.total {
		dest.Cell(toInput).SetValue(src.Value())
		return
	}
	ref.count = 0
	dest.Cell(toInput).MoveValueFrom(src)
}

// PullOutputParallel implements wire.Source for parallel mode: wait for
// the ready flag at fromOutput on bufferNo, then apply the same
// copy-or-move fan-out rule. Non-final pulls re-set the ready flag so
// sibling consumers on other goroutines can proceed; the final pull
// leaves it cleared for the producer's next tick to re-set.
func (c *Component) PullOutputParallel(bufferNo, fromOutput, toInput int, dest *signalbus.SignalBus) {
	ref := &c.refs[bufferNo][fromOutput]
	ref.ready.WaitAndClear()

	src := c.outputBuses[bufferNo].Cell(fromOutput)
	if !src.HasValue() {
		if ref.total > 1 {
			ref.count++
			if ref.count != ref.total {
				ref.ready.Set()
			} else {
				ref.count = 0
			}
		}
		return
	}

	if ref.total == 1 {
		dest.Cell(toInput).MoveValueFrom(src)
		return
	}
	ref.count++
	if ref.count != ref.total {
		dest.Cell(toInput).SetValue(src.Value())
		ref.ready.Set()
		return
	}
	ref.count = 0
	dest.Cell(toInput).MoveValueFrom(src)
}

func (c *Component) incRefs(output int) {
	for i := range c.refs {
		c.refs[i][output].total++
	}
}

func (c *Component) decRefs(output int) {
	for i := range c.refs {
		c.refs[i][output].total--
	}
}

func (c *Component) releaseNextThread(threadNo int) {
	threadNo++
	if threadNo == c.bufferCount {
		c.releaseFlags[0].Set()
	} else {
		c.releaseFlags[threadNo].Set()
	}
}
