package scheduler

import (
	"sync"

	"circuitgo/component"
)

// ParallelWorker ticks its stride of the parallel-ordered component
// list on a single fixed buffer row. A circuit row of threadCount
// ParallelWorkers cooperatively covers every component in that row,
// each starting at index threadNo and stepping by threadCount.
type ParallelWorker struct {
	mu         sync.Mutex
	syncCond   *sync.Cond
	resumeCond *sync.Cond

	components  *[]*component.Component
	bufferNo    int
	threadNo    int
	threadCount int

	gotSync bool
	stop    bool
	running bool
}

// NewParallelWorker returns a worker in the stopped state.
func NewParallelWorker() *ParallelWorker {
	w := &ParallelWorker{}
	w.syncCond = sync.NewCond(&w.mu)
	w.resumeCond = sync.NewCond(&w.mu)
	return w
}

// Start begins the worker's goroutine against the parallel-ordered
// components slice, its buffer row, its stride offset, and the row's
// total stride.
func (w *ParallelWorker) Start(components *[]*component.Component, bufferNo, threadNo, threadCount int) {
	w.mu.Lock()
	w.components = components
	w.bufferNo = bufferNo
	w.threadNo = threadNo
	w.threadCount = threadCount
	w.stop = false
	w.gotSync = false
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop signals the worker to exit and waits for it.
func (w *ParallelWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.stop = true
	w.mu.Unlock()

	w.Resume()

	w.mu.Lock()
	for w.running {
		w.syncCond.Wait()
	}
	w.mu.Unlock()
}

// Sync blocks until the worker reaches its sync point.
func (w *ParallelWorker) Sync() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for !w.gotSync {
		w.syncCond.Wait()
	}
}

// Resume signals the worker to run one more pass.
func (w *ParallelWorker) Resume() {
	w.mu.Lock()
	w.gotSync = false
	w.resumeCond.Broadcast()
	w.mu.Unlock()
}

func (w *ParallelWorker) run() {
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

		components := *w.components
		for i := w.threadNo; i < len(components); i += w.threadCount {
			components[i].TickParallel(w.bufferNo)
		}
	}

	w.mu.Lock()
	w.running = false
	w.syncCond.Broadcast()
	w.mu.Unlock()
}
