package channel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/containerd/fifo"
	"github.com/cruciblehq/persistd/internal/paths"
	"golang.org/x/sys/unix"
)

// Upper bound, in bytes, of a request or response payload.
const MaxPayload = 1024

// Paths of the request and response FIFOs.
type Pair struct {
	Request  string // Client to daemon.
	Response string // Daemon to client.
}

// Returns the pair located in the layout's runtime directory.
func NewPair(l paths.Layout) Pair {
	return Pair{
		Request:  l.RequestFifo(),
		Response: l.ResponseFifo(),
	}
}

// Replaces any leftover FIFOs with fresh ones.
//
// Stale files from a daemon that did not shut down cleanly are removed first,
// whatever their type.
func (p Pair) Create() error {
	if err := p.Remove(); err != nil {
		return err
	}
	for _, path := range p.paths() {
		if err := unix.Mkfifo(path, uint32(paths.FifoMode)); err != nil {
			return fmt.Errorf("%w: mkfifo %s: %w", ErrChannel, path, err)
		}
	}
	return nil
}

// Deletes both FIFOs. Missing files are ignored.
func (p Pair) Remove() error {
	var errs []error
	for _, path := range p.paths() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrChannel, errors.Join(errs...))
	}
	return nil
}

// Deletes both FIFOs, first waking clients blocked opening the request side.
//
// A writer stuck in open(2) on a FIFO that is unlinked would wait forever.
// Holding a non-blocking read end across the removal lets those opens
// complete; the writers then fail on the missing response FIFO or on a
// broken pipe instead of hanging.
func (p Pair) Retire() error {
	fd, err := unix.Open(p.Request, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err == nil {
		defer unix.Close(fd)
	}
	return p.Remove()
}

// Returns true if both paths exist and are FIFOs.
func (p Pair) Exists() bool {
	for _, path := range p.paths() {
		ok, err := fifo.IsFifo(path)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// Returns true if neither path exists.
func (p Pair) Gone() bool {
	for _, path := range p.paths() {
		if _, err := os.Lstat(path); !errors.Is(err, fs.ErrNotExist) {
			return false
		}
	}
	return true
}

func (p Pair) paths() []string {
	return []string{p.Request, p.Response}
}

// Truncates b to [MaxPayload] bytes.
func bound(b []byte) []byte {
	if len(b) > MaxPayload {
		return b[:MaxPayload]
	}
	return b
}
