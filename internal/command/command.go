package command

import (
	"bytes"
	"strings"
)

// Kind of request.
type Kind int

const (
	Unknown Kind = iota
	Status
	Get
	Set
	Shutdown
)

// Returns the keyword for k.
func (k Kind) String() string {
	switch k {
	case Status:
		return "STATUS"
	case Get:
		return "GET"
	case Set:
		return "SET"
	case Shutdown:
		return "SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}

const (
	setPrefix = "SET "
	getPrefix = "GET "
)

// One parsed request.
type Command struct {
	Kind  Kind
	Key   string // GET and SET only.
	Value string // SET only.
	Raw   string // Payload text as received, up to the first NUL.
	Err   error  // Non-nil when the keyword matched but the arguments did not.
}

// Parses a request payload.
//
// The payload is read as text up to the first NUL byte. Keywords must match
// exactly, so "status" or "STATUS\n" are unknown commands.
func Parse(payload []byte) Command {
	if i := bytes.IndexByte(payload, 0); i >= 0 {
		payload = payload[:i]
	}
	raw := string(payload)

	switch {
	case raw == "STATUS":
		return Command{Kind: Status, Raw: raw}
	case strings.HasPrefix(raw, setPrefix):
		return parseSet(raw)
	case strings.HasPrefix(raw, getPrefix):
		key := strings.TrimRight(raw[len(getPrefix):], " \n\r\t")
		return Command{Kind: Get, Key: key, Raw: raw}
	case raw == "SHUTDOWN":
		return Command{Kind: Shutdown, Raw: raw}
	default:
		return Command{Kind: Unknown, Raw: raw, Err: ErrUnknownCommand}
	}
}

// Parses "SET <key><sep><value>".
//
// Leading whitespace before the key is skipped and the key ends at the next
// whitespace character. The value is the rest of the line with exactly one
// leading character (the separator) removed, so "SET k  v" stores " v" and
// "SET k " stores the empty string. A key with nothing after it is malformed.
func parseSet(raw string) Command {
	cmd := Command{Kind: Set, Raw: raw}

	rest := strings.TrimLeftFunc(raw[len(setPrefix):], isSpace)
	end := strings.IndexFunc(rest, isSpace)
	if rest == "" || end < 0 {
		cmd.Err = ErrInvalidSet
		return cmd
	}

	tail := rest[end:]
	if i := strings.IndexByte(tail, '\n'); i >= 0 {
		tail = tail[:i]
	}

	cmd.Key = rest[:end]
	if tail != "" {
		cmd.Value = tail[1:]
	}
	return cmd
}

// Reports whether r separates words in a SET command.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
