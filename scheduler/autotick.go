package scheduler

import "sync"

// Circuit is the subset of circuit.Circuit the auto-tick driver needs;
// declared here to avoid an import cycle between scheduler and circuit.
type Circuit interface {
	Tick()
}

// AutoTick drives a Circuit's Tick method continuously on its own
// goroutine, with a reentrant pause discipline: nested Pause/Resume
// calls compose via a pause counter, so only the matching (outermost)
// Resume actually wakes the driver — but every Pause call, nested or
// not, blocks until the driver is actually parked before returning.
type AutoTick struct {
	mu         sync.Mutex
	resumeCond *sync.Cond
	pauseCond  *sync.Cond

	circuit    Circuit
	pauseCount int
	pause      bool
	parked     bool
	stop       bool
	stopped    bool
}

// NewAutoTick returns a driver in the stopped state.
func NewAutoTick() *AutoTick {
	a := &AutoTick{stopped: true}
	a.resumeCond = sync.NewCond(&a.mu)
	a.pauseCond = sync.NewCond(&a.mu)
	return a
}

// Start begins ticking circuit continuously. If the driver is already
// running, Start behaves as Resume instead.
func (a *AutoTick) Start(circuit Circuit) {
	a.mu.Lock()
	if !a.stopped {
		a.mu.Unlock()
		a.Resume()
		return
	}
	a.circuit = circuit
	a.stop = false
	a.stopped = false
	a.pause = false
	a.mu.Unlock()

	go a.run()
}

// Stop signals the driver to exit and waits for it to do so, waking it
// first if it is currently parked on Pause.
func (a *AutoTick) Stop() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stop = true
	a.resumeCond.Broadcast()
	for !a.stopped {
		a.pauseCond.Wait()
	}
	a.mu.Unlock()
}

// Pause increments the pause counter and blocks until the driver has
// actually parked. Every call blocks, not just the outermost one: a
// caller must never proceed believing the driver is quiesced when it
// has merely been asked to quiesce. `pause` ("should the driver stay
// parked") and `parked` ("has the driver reached the park point") are
// deliberately separate flags — Resume only clears the former, so the
// driver itself reports parked via the latter once per park, which is
// what a waiter here needs to observe.
func (a *AutoTick) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.pauseCount++
	if a.pauseCount == 1 {
		a.pause = true
	}
	for !a.parked && !a.stopped {
		a.pauseCond.Wait()
	}
}

// Resume decrements the pause counter; only the last (outermost) call
// actually wakes the driver.
func (a *AutoTick) Resume() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.pause {
		return
	}
	a.pauseCount--
	if a.pauseCount != 0 {
		return
	}
	a.pause = false
	a.resumeCond.Broadcast()
}

func (a *AutoTick) run() {
	for {
		a.mu.Lock()
		stop := a.stop
		a.mu.Unlock()
		if stop {
			break
		}

		a.circuit.Tick()

		a.mu.Lock()
		if a.pause {
			a.parked = true
			a.pauseCond.Broadcast()
			for a.pause && !a.stop {
				a.resumeCond.Wait()
			}
			a.parked = false
		}
		a.mu.Unlock()
	}

	a.mu.Lock()
	a.stopped = true
	a.pauseCond.Broadcast()
	a.mu.Unlock()
}
