// Package liveness decides whether a persistd daemon is currently active.
//
// The daemon records its PID in a [Marker] file when it starts and removes it
// on clean shutdown. A marker alone proves nothing: a daemon that crashed
// leaves it behind. [IsRunning] therefore also asks a [Probe] whether the
// recorded process still exists, and treats a stale marker exactly like an
// absent one.
//
// Example usage:
//
//	m := liveness.Marker{Path: layout.PIDFile()}
//	if !liveness.IsRunning(m, liveness.SignalProbe{}) {
//	    // launch a daemon
//	}
package liveness
