package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cruciblehq/persistd/internal/client"
)

var ErrCommandFailed = errors.New("command failed")

// Represents the 'persistd status' command.
type StatusCmd struct{}

// Executes the status command.
func (c *StatusCmd) Run(ctx context.Context, s *Settings) error {
	return oneShot(ctx, s, "STATUS", true)
}

// Represents the 'persistd get' command.
type GetCmd struct {
	Key string `arg:"" help:"Key to look up."`
}

// Executes the get command.
func (c *GetCmd) Run(ctx context.Context, s *Settings) error {
	return oneShot(ctx, s, "GET "+c.Key, true)
}

// Represents the 'persistd set' command.
type SetCmd struct {
	Key   string   `arg:"" help:"Key to store under."`
	Value []string `arg:"" help:"Value to store; multiple words are joined by spaces."`
}

// Executes the set command.
func (c *SetCmd) Run(ctx context.Context, s *Settings) error {
	return oneShot(ctx, s, "SET "+c.Key+" "+strings.Join(c.Value, " "), true)
}

// Represents the 'persistd shutdown' command.
type ShutdownCmd struct{}

// Executes the shutdown command. A daemon is never launched just to stop it.
func (c *ShutdownCmd) Run(ctx context.Context, s *Settings) error {
	return oneShot(ctx, s, "SHUTDOWN", false)
}

// Runs a single transaction and prints the reply.
//
// Replies starting with "ERROR:" turn into [ErrCommandFailed] so scripts can
// rely on the exit status.
func oneShot(ctx context.Context, s *Settings, request string, launch bool) error {
	cl := client.New(s.Layout)

	if launch {
		if err := ensureDaemon(ctx, cl, s, io.Discard); err != nil {
			return err
		}
	}

	reply := cl.Transact(ctx, request)
	fmt.Println(reply)

	if strings.HasPrefix(reply, "ERROR:") {
		return ErrCommandFailed
	}
	return nil
}
