package server

// Lifecycle stage of the daemon process.
//
//	Starting -> Detaching -> Initializing -> Serving -> Stopping -> Terminated
//
// Starting and Detaching happen before a [Server] exists (see the daemonize
// package); a Server begins in Initializing.
type Stage int

const (
	StageStarting Stage = iota
	StageDetaching
	StageInitializing
	StageServing
	StageStopping
	StageTerminated
)

func (s Stage) String() string {
	switch s {
	case StageStarting:
		return "starting"
	case StageDetaching:
		return "detaching"
	case StageInitializing:
		return "initializing"
	case StageServing:
		return "serving"
	case StageStopping:
		return "stopping"
	case StageTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
