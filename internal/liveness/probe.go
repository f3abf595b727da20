package liveness

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Reports whether a process exists.
type Probe interface {
	Exists(pid int) bool
}

// Probes processes with signal 0.
//
// The kernel performs the existence and permission checks of kill(2) without
// delivering anything, so the target is unaffected.
type SignalProbe struct{}

// Returns true if the process exists.
//
// EPERM means the process exists but belongs to another user, which still
// counts as alive.
func (SignalProbe) Exists(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// Adapts an ordinary function to the [Probe] interface.
type ProbeFunc func(pid int) bool

// Calls f(pid).
func (f ProbeFunc) Exists(pid int) bool {
	return f(pid)
}
