package client

import "errors"

var (
	ErrLaunch   = errors.New("failed to launch daemon")
	ErrNotReady = errors.New("daemon not ready in time")
)
