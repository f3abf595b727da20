package command

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrInvalidSet     = fmt.Errorf("invalid SET command: %w", errdefs.ErrInvalidArgument)
	ErrUnknownCommand = errors.New("unknown command")
)
