package liveness

import "errors"

var (
	ErrMarker     = errors.New("liveness marker error")
	ErrInvalidPID = errors.New("invalid pid in liveness marker")
)
