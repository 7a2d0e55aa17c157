//go:build linux

package scheduler

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// elevatePriority locks the calling goroutine to its OS thread and makes
// a best-effort attempt to raise that thread's scheduling priority, the
// same "not required for correctness" elevation the original engine's
// worker threads perform on startup.
func elevatePriority() {
	runtime.LockOSThread()
	_ = unix.Setpriority(unix.PRIO_PROCESS, 0, -10)
}
