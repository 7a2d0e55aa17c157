// Package scheduler implements the engine's three thread kinds: the
// serial buffer worker, the parallel buffer/slice worker, and the
// auto-tick driver, plus their Sync/Resume synchronization discipline.
package scheduler

import (
	"sync"

	"circuitgo/component"
)

// SerialWorker ticks every component in series order on a single fixed
// buffer slot, once per Resume, running as a free goroutine between
// resumes.
type SerialWorker struct {
	mu         sync.Mutex
	syncCond   *sync.Cond
	resumeCond *sync.Cond

	components *[]*component.Component
	bufferNo   int

	gotSync bool
	stop    bool
	stopped bool
}

// NewSerialWorker returns a worker in the stopped state.
func NewSerialWorker() *SerialWorker {
	w := &SerialWorker{stopped: true, gotSync: true}
	w.syncCond = sync.NewCond(&w.mu)
	w.resumeCond = sync.NewCond(&w.mu)
	return w
}

// Start begins the worker's goroutine against components (a pointer to
// the circuit's live series-order slice, so re-ordering via Optimize is
// visible on the worker's next resume) and bufferNo. A no-op if already
// running.
func (w *SerialWorker) Start(components *[]*component.Component, bufferNo int) {
	w.mu.Lock()
	if !w.stopped {
		w.mu.Unlock()
		return
	}
	w.components = components
	w.bufferNo = bufferNo
	w.stop = false
	w.stopped = false
	w.gotSync = false
	w.mu.Unlock()

	go w.run()
}

// Stop synchronizes, then signals the worker to exit and waits for it.
func (w *SerialWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.Sync()

	w.mu.Lock()
	w.stop = true
	w.mu.Unlock()

	w.SyncAndResume()

	w.mu.Lock()
	for !w.stopped {
		w.syncCond.Wait()
	}
	w.mu.Unlock()
}

// Sync blocks until the worker has completed its current pass and is
// waiting to be resumed.
func (w *SerialWorker) Sync() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || w.gotSync {
		return
	}
	for !w.gotSync {
		w.syncCond.Wait()
	}
}

// SyncAndResume waits for the worker to reach its sync point (if it
// hasn't already), then resumes it for one more pass.
func (w *SerialWorker) SyncAndResume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if !w.gotSync {
		for !w.gotSync {
			w.syncCond.Wait()
		}
	}
	w.gotSync = false
	w.resumeCond.Broadcast()
}

func (w *SerialWorker) run() {
	elevatePriority()

	for {
		w.mu.Lock()
		w.gotSync = true
		w.syncCond.Broadcast()
		for w.gotSync && !w.stop {
			w.resumeCond.Wait()
		}
		stop := w.stop
		w.mu.Unlock()

		if stop {
			break
		}

		for _, c := range *w.components {
			c.TickSeries(w.bufferNo)
		}
	}

	w.mu.Lock()
	w.stopped = true
	w.syncCond.Broadcast()
	w.mu.Unlock()
}
