//go:build !linux

package scheduler

import "runtime"

// elevatePriority locks the calling goroutine to its OS thread. Priority
// elevation itself is Linux-only in this engine; elsewhere the lock
// alone is the best-effort measure available.
func elevatePriority() {
	runtime.LockOSThread()
}
