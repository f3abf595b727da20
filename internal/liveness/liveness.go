package liveness

// Returns true iff the marker names a process that the probe reports alive.
//
// An absent, unreadable, or unparsable marker means "not running", which lets
// the caller launch a fresh daemon. The marker is never modified.
func IsRunning(m Marker, p Probe) bool {
	pid, err := m.Read()
	if err != nil {
		return false
	}
	return p.Exists(pid)
}

// Returns the PID of the live daemon owning the marker, or 0 if none.
func RunningPID(m Marker, p Probe) int {
	pid, err := m.Read()
	if err != nil || !p.Exists(pid) {
		return 0
	}
	return pid
}
