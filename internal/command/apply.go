package command

import (
	"fmt"
	"time"

	"github.com/containerd/errdefs"
	"github.com/cruciblehq/persistd/internal/store"
)

// Reply texts.
const (
	ShutdownReply    = "Shutting down..."
	InvalidSetReply  = "ERROR: Invalid SET command"
	NotFoundReply    = "ERROR: Key not found"
	UnknownReply     = "ERROR: Unknown command. Use STATUS, GET <key>, SET <key> <value>, or SHUTDOWN"
	statusReplyFmt   = "Status: Running\nQueries: %d\nUptime: %d seconds\nState entries: %d\n"
	setReplyFmt      = "OK: Set %s = %s"
	valueReplyPrefix = "VALUE: "
)

// Outcome of applying one command.
type Reply struct {
	Text     string // Payload sent back to the client.
	Shutdown bool   // The daemon must stop after sending Text.
	Err      error  // Failure the text reports, if any.
}

// Applies cmd to the state and returns the reply.
//
// now is the wall time used for the STATUS uptime.
func Apply(s *store.State, cmd Command, now time.Time) Reply {
	switch cmd.Kind {
	case Status:
		queries := s.CountQuery()
		uptime := int64(s.Uptime(now) / time.Second)
		return Reply{Text: fmt.Sprintf(statusReplyFmt, queries, uptime, s.Len())}

	case Set:
		if cmd.Err != nil {
			return Reply{Text: InvalidSetReply, Err: cmd.Err}
		}
		s.Set(cmd.Key, cmd.Value)
		return Reply{Text: fmt.Sprintf(setReplyFmt, cmd.Key, cmd.Value)}

	case Get:
		v, err := s.Get(cmd.Key)
		if err != nil {
			return Reply{Text: errorReply(err), Err: err}
		}
		return Reply{Text: valueReplyPrefix + v}

	case Shutdown:
		return Reply{Text: ShutdownReply, Shutdown: true}

	default:
		return Reply{Text: UnknownReply, Err: ErrUnknownCommand}
	}
}

// Renders a state error as reply text.
func errorReply(err error) string {
	if errdefs.IsNotFound(err) {
		return NotFoundReply
	}
	return "ERROR: " + err.Error()
}
