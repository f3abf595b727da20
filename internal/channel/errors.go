package channel

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrChannel    = errors.New("channel error")
	ErrConnect    = fmt.Errorf("cannot connect to daemon: %w", errdefs.ErrUnavailable)
	ErrReadReply  = fmt.Errorf("cannot read response: %w", errdefs.ErrUnavailable)
	ErrNoResponse = errors.New("no response")
	ErrEmpty      = fmt.Errorf("empty request: %w", errdefs.ErrInvalidArgument)
)
