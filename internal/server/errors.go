package server

import "errors"

var (
	ErrServer         = errors.New("server error")
	ErrAlreadyRunning = errors.New("another daemon is already running")
	ErrChannelsGone   = errors.New("channels removed while serving")
)
