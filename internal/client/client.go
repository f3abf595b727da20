package client

import (
	"context"
	"errors"

	"github.com/cruciblehq/persistd/internal/channel"
	"github.com/cruciblehq/persistd/internal/liveness"
	"github.com/cruciblehq/persistd/internal/paths"
)

// Error lines printed in place of a daemon reply.
const (
	ConnectErrorText    = "ERROR: Cannot connect to daemon"
	ReadErrorText       = "ERROR: Cannot read response"
	NoResponseErrorText = "ERROR: No response"
	EmptyRequestText    = "ERROR: Empty request"
)

// Client side of the daemon protocol.
type Client struct {
	layout paths.Layout    // Runtime directory shared with the daemon.
	pair   channel.Pair    // FIFOs used for transactions.
	marker liveness.Marker // Marker read by the liveness check.
	probe  liveness.Probe  // Process existence check.
}

// Creates a client for the daemon whose artifacts live in the layout.
func New(l paths.Layout) *Client {
	return &Client{
		layout: l,
		pair:   channel.NewPair(l),
		marker: liveness.Marker{Path: l.PIDFile()},
		probe:  liveness.SignalProbe{},
	}
}

// Returns the layout the client uses.
func (c *Client) Layout() paths.Layout {
	return c.layout
}

// Returns true if a live daemon owns the liveness marker.
func (c *Client) IsRunning() bool {
	return liveness.IsRunning(c.marker, c.probe)
}

// Launches a daemon unless one is already running.
//
// Returns true if a launch was performed. The liveness check is the only gate,
// so a daemon that is alive is never launched twice. FIFOs and a marker left
// by a dead daemon are removed before launching, so the first transaction
// cannot block on a FIFO the new daemon is about to replace.
func (c *Client) EnsureDaemon(ctx context.Context, l Launcher) (bool, error) {
	if c.IsRunning() {
		return false, nil
	}
	if err := c.clearStale(); err != nil {
		return false, err
	}
	if err := l.Launch(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Removes the artifacts of a daemon that is no longer running.
func (c *Client) clearStale() error {
	if err := c.pair.Remove(); err != nil {
		return err
	}
	return c.marker.Remove()
}

// Runs one transaction and returns the daemon's reply.
//
// Errors wrap [channel.ErrConnect], [channel.ErrReadReply],
// [channel.ErrNoResponse] or [channel.ErrEmpty].
func (c *Client) Do(ctx context.Context, request string) (string, error) {
	resp, err := c.pair.Transact(ctx, []byte(request))
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

// Runs one transaction and returns printable text, never failing.
//
// Transport failures are rendered as the ERROR lines above; daemon-side
// failures already arrive as reply text.
func (c *Client) Transact(ctx context.Context, request string) string {
	resp, err := c.Do(ctx, request)
	if err != nil {
		return errorText(err)
	}
	return resp
}

// Renders a transaction error as an ERROR line.
func errorText(err error) string {
	switch {
	case errors.Is(err, channel.ErrConnect):
		return ConnectErrorText
	case errors.Is(err, channel.ErrReadReply):
		return ReadErrorText
	case errors.Is(err, channel.ErrNoResponse):
		return NoResponseErrorText
	case errors.Is(err, channel.ErrEmpty):
		return EmptyRequestText
	default:
		return "ERROR: " + err.Error()
	}
}
