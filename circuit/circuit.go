// Package circuit implements the engine's Circuit: it owns a component
// set, validates and records wiring, maintains series and parallel
// ordering, owns the scheduler threads, and exposes the Tick/AutoTick
// control surface.
package circuit

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"circuitgo/component"
	"circuitgo/errcode"
	"circuitgo/scheduler"
)

// Circuit owns a set of components, the wiring between them, and the
// scheduler threads that drive ticks across however many buffers and
// threads it is configured for.
type Circuit struct {
	bufferCount   int
	threadCount   int
	currentBuffer int

	autoTick *scheduler.AutoTick

	components         []*component.Component
	componentsSet      map[*component.Component]struct{}
	componentsParallel []*component.Component

	serialWorkers   []*scheduler.SerialWorker
	parallelWorkers [][]*scheduler.ParallelWorker

	dirty bool

	errMu   sync.Mutex
	lastErr error
}

// New returns an empty Circuit with no buffers and no threads (the
// synchronous, single-buffer series dispatch mode).
func New() *Circuit {
	ci := &Circuit{componentsSet: map[*component.Component]struct{}{}}
	ci.autoTick = scheduler.NewAutoTick()
	return ci
}

// AddComponent adds comp to the circuit, issuing it the circuit's
// current buffer count and buffer index. Rejects a nil component or one
// already added to this circuit.
func (ci *Circuit) AddComponent(comp *component.Component) (bool, error) {
	if comp == nil {
		return false, errcode.New("Circuit.AddComponent", errcode.ErrInvalidConfig, "nil component")
	}
	if _, ok := ci.componentsSet[comp]; ok {
		return false, errcode.New("Circuit.AddComponent", errcode.ErrAlreadyInCircuit, "component already in this circuit")
	}

	comp.SetBufferCount(ci.bufferCount, ci.currentBuffer)

	ci.PauseAutoTick()
	ci.components = append(ci.components, comp)
	ci.componentsParallel = append(ci.componentsParallel, comp)
	ci.ResumeAutoTick()

	ci.componentsSet[comp] = struct{}{}

	return true, nil
}

// RemoveComponent disconnects comp from every wire in the circuit, then
// drops it.
func (ci *Circuit) RemoveComponent(comp *component.Component) (bool, error) {
	if _, ok := ci.componentsSet[comp]; !ok {
		return false, errcode.New("Circuit.RemoveComponent", errcode.ErrNotInCircuit, "")
	}

	idx := slices.IndexFunc(ci.components, func(c *component.Component) bool { return c == comp })
	if idx < 0 {
		return false, errcode.New("Circuit.RemoveComponent", errcode.ErrNotFound, "")
	}

	ci.PauseAutoTick()

	ci.disconnectComponent(comp)
	ci.components = append(ci.components[:idx], ci.components[idx+1:]...)

	ci.ResumeAutoTick()

	delete(ci.componentsSet, comp)

	return true, nil
}

// RemoveAllComponents drops every component from the circuit without
// individually disconnecting wires (unlike RemoveComponent): the dropped
// components keep whatever wires they had among themselves.
func (ci *Circuit) RemoveAllComponents() {
	ci.PauseAutoTick()
	ci.components = nil
	ci.componentsParallel = nil
	ci.ResumeAutoTick()

	ci.componentsSet = map[*component.Component]struct{}{}
}

// ComponentCount returns the number of components owned by the circuit.
func (ci *Circuit) ComponentCount() int { return len(ci.components) }

// Contains reports whether comp belongs to this circuit.
func (ci *Circuit) Contains(comp *component.Component) bool {
	_, ok := ci.componentsSet[comp]
	return ok
}

// ComponentSet returns every component the circuit owns, in no
// particular order.
func (ci *Circuit) ComponentSet() []*component.Component {
	return maps.Keys(ci.componentsSet)
}

// ConnectOutToIn validates that both endpoints belong to this circuit,
// then wires from's output fromOutput into to's input toInput.
func (ci *Circuit) ConnectOutToIn(from *component.Component, fromOutput int, to *component.Component, toInput int) (bool, error) {
	if _, ok := ci.componentsSet[from]; !ok {
		return false, errcode.New("Circuit.ConnectOutToIn", errcode.ErrNotInCircuit, "source component not in circuit")
	}
	if _, ok := ci.componentsSet[to]; !ok {
		return false, errcode.New("Circuit.ConnectOutToIn", errcode.ErrNotInCircuit, "destination component not in circuit")
	}

	ci.PauseAutoTick()
	ok, err := to.ConnectInput(from, fromOutput, toInput)
	if ok {
		ci.dirty = true
	}
	ci.ResumeAutoTick()

	return ok, err
}

// DisconnectComponent removes every wire touching comp, in either
// direction.
func (ci *Circuit) DisconnectComponent(comp *component.Component) (bool, error) {
	if _, ok := ci.componentsSet[comp]; !ok {
		return false, errcode.New("Circuit.DisconnectComponent", errcode.ErrNotInCircuit, "")
	}

	ci.PauseAutoTick()
	ci.disconnectComponent(comp)
	ci.ResumeAutoTick()

	return true, nil
}

func (ci *Circuit) disconnectComponent(comp *component.Component) {
	comp.DisconnectAllInputs()
	for _, other := range ci.components {
		other.DisconnectInputFrom(comp)
	}
	ci.dirty = true
}

// DisconnectAllComponents removes every wire in the circuit.
func (ci *Circuit) DisconnectAllComponents() {
	ci.PauseAutoTick()
	for _, c := range ci.components {
		c.DisconnectAllInputs()
	}
	ci.ResumeAutoTick()
}

// SetBufferCount reconfigures the circuit for bufferCount buffer slots
// (0 means the synchronous no-buffer mode). Quiesces the auto-tick
// thread around the change and resizes every component's own buffer
// state to match.
func (ci *Circuit) SetBufferCount(bufferCount int) {
	ci.PauseAutoTick()

	ci.bufferCount = bufferCount

	for _, w := range ci.serialWorkers {
		w.Stop()
	}

	if ci.threadCount != 0 {
		ci.serialWorkers = nil
		ci.SetThreadCount(ci.threadCount)
	} else {
		ci.serialWorkers = make([]*scheduler.SerialWorker, bufferCount)
		for i := range ci.serialWorkers {
			ci.serialWorkers[i] = scheduler.NewSerialWorker()
			ci.serialWorkers[i].Start(&ci.components, i)
		}
	}

	if ci.currentBuffer >= ci.bufferCount {
		ci.currentBuffer = 0
	}

	for _, c := range ci.components {
		c.SetBufferCount(ci.bufferCount, ci.currentBuffer)
	}

	ci.ResumeAutoTick()
}

// BufferCount returns the circuit's current buffer count.
func (ci *Circuit) BufferCount() int { return ci.bufferCount }

// SetThreadCount reconfigures the circuit for threadCount parallel
// workers per buffer row (0 turns threading off, reverting to serial
// workers).
func (ci *Circuit) SetThreadCount(threadCount int) {
	ci.PauseAutoTick()

	ci.threadCount = threadCount
	ci.dirty = true

	for _, row := range ci.parallelWorkers {
		for _, w := range row {
			w.Stop()
		}
	}

	if ci.threadCount == 0 {
		ci.parallelWorkers = nil
		ci.SetBufferCount(ci.bufferCount)
	} else {
		rows := ci.bufferCount
		if rows == 0 {
			rows = 1
		}
		ci.parallelWorkers = make([][]*scheduler.ParallelWorker, rows)
		for i := range ci.parallelWorkers {
			ci.parallelWorkers[i] = make([]*scheduler.ParallelWorker, ci.threadCount)
			for j := range ci.parallelWorkers[i] {
				ci.parallelWorkers[i][j] = scheduler.NewParallelWorker()
				ci.parallelWorkers[i][j].Start(&ci.componentsParallel, i, j, ci.threadCount)
			}
		}
	}

	ci.ResumeAutoTick()
}

// ThreadCount returns the circuit's current per-row thread count.
func (ci *Circuit) ThreadCount() int { return ci.threadCount }

// Tick drives the circuit forward by one tick, re-optimizing ordering
// first if the graph is dirty. The dispatch mode (synchronous, serial
// buffered, or parallel threaded) follows from the current buffer and
// thread counts.
func (ci *Circuit) Tick() error {
	if ci.dirty {
		if err := ci.optimize(); err != nil {
			ci.setLastErr(err)
			return err
		}
	}

	switch {
	case ci.bufferCount == 0 && ci.threadCount == 0:
		for _, c := range ci.components {
			c.TickSeries(0)
		}
		ci.setLastErr(nil)
		return nil

	case ci.threadCount != 0:
		row := ci.parallelWorkers[ci.currentBuffer]
		for _, w := range row {
			w.Sync()
		}
		for _, w := range row {
			w.Resume()
		}

	default:
		ci.serialWorkers[ci.currentBuffer].SyncAndResume()
	}

	if ci.bufferCount != 0 {
		ci.currentBuffer++
		if ci.currentBuffer == ci.bufferCount {
			ci.currentBuffer = 0
		}
	}

	ci.setLastErr(nil)
	return nil
}

// Sync blocks until every worker thread has reached its sync point,
// guaranteeing all in-flight work has retired.
func (ci *Circuit) Sync() {
	for _, w := range ci.serialWorkers {
		w.Sync()
	}
	for _, row := range ci.parallelWorkers {
		for _, w := range row {
			w.Sync()
		}
	}
}

// StartAutoTick begins a dedicated goroutine that calls Tick in a loop.
func (ci *Circuit) StartAutoTick() {
	ci.autoTick.Start(autoTickCircuit{ci})
}

// StopAutoTick stops the auto-tick driver and waits for all in-flight
// work to retire.
func (ci *Circuit) StopAutoTick() {
	ci.autoTick.Stop()
	ci.Sync()
}

// PauseAutoTick reentrantly pauses the auto-tick driver (if running)
// and synchronizes all worker threads.
func (ci *Circuit) PauseAutoTick() {
	ci.autoTick.Pause()
	ci.Sync()
}

// ResumeAutoTick reentrantly resumes the auto-tick driver.
func (ci *Circuit) ResumeAutoTick() {
	ci.autoTick.Resume()
}

// Optimize re-runs the series and parallel ordering scans if the graph
// is dirty.
func (ci *Circuit) Optimize() error {
	if !ci.dirty {
		return nil
	}
	ci.PauseAutoTick()
	err := ci.optimize()
	ci.ResumeAutoTick()
	return err
}

// LastTickError returns the error (if any) from the most recent Tick,
// including ticks driven by the auto-tick thread.
func (ci *Circuit) LastTickError() error {
	ci.errMu.Lock()
	defer ci.errMu.Unlock()
	return ci.lastErr
}

func (ci *Circuit) setLastErr(err error) {
	ci.errMu.Lock()
	ci.lastErr = err
	ci.errMu.Unlock()
}

// optimize rebuilds the series order (post-order DFS) and the parallel
// layering (DFS by max-predecessor-depth-plus-one), in that order,
// exactly mirroring the engine's original scan/EndScan discipline.
func (ci *Circuit) optimize() error {
	ordered := make([]*component.Component, 0, len(ci.components))
	for _, c := range ci.components {
		c.ScanSeries(&ordered)
	}
	for _, c := range ci.components {
		c.EndScan()
	}
	ci.components = ordered

	if ci.threadCount > 0 {
		if err := detectFeedback(ci.components); err != nil {
			return err
		}
	}

	var layers [][]*component.Component
	for i := len(ci.components) - 1; i >= 0; i-- {
		var pos int
		ci.components[i].ScanParallel(&layers, &pos)
	}
	for _, c := range ci.components {
		c.EndScan()
	}

	parallel := make([]*component.Component, 0, len(ci.components))
	for _, layer := range layers {
		parallel = append(parallel, layer...)
	}
	ci.componentsParallel = parallel

	ci.dirty = false
	return nil
}

// detectFeedback walks the wire graph for a back edge (a wire whose
// source is still on the current DFS stack). Under threads-on
// scheduling a back edge would make the ready-flag discipline deadlock,
// since a component would block forever on an output its own tick
// produces only after this one. detectFeedback refuses that
// configuration instead.
func detectFeedback(components []*component.Component) error {
	const (
		white = iota
		gray
		black
	)
	state := make(map[*component.Component]int, len(components))

	var visit func(c *component.Component) error
	visit = func(c *component.Component) error {
		state[c] = gray
		for _, src := range c.Sources() {
			switch state[src] {
			case gray:
				return errcode.New("Circuit.Optimize", errcode.ErrFeedbackUnderThreads,
					"feedback wire detected while thread count > 0")
			case white:
				if err := visit(src); err != nil {
					return err
				}
			}
		}
		state[c] = black
		return nil
	}

	for _, c := range components {
		if state[c] == white {
			if err := visit(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// autoTickCircuit adapts *Circuit to scheduler.Circuit.
type autoTickCircuit struct{ c *Circuit }

func (a autoTickCircuit) Tick() {
	if err := a.c.Tick(); err != nil {
		a.c.setLastErr(err)
	}
}
