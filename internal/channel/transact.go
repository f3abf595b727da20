package channel

import (
	"context"
	"fmt"

	"github.com/containerd/fifo"
	"golang.org/x/sys/unix"
)

// Runs one client transaction: writes request, then reads the response.
//
// If the request FIFO does not exist the call fails immediately with
// [ErrConnect]. If it exists, the open blocks until the daemon is ready for a
// new request, and the response open blocks until the daemon replies. Neither
// wait has a timeout of its own; only ctx can end it. Requests over
// [MaxPayload] bytes are truncated, and empty requests are refused since the
// daemon never answers them.
func (p Pair) Transact(ctx context.Context, request []byte) ([]byte, error) {
	if len(request) == 0 {
		return nil, ErrEmpty
	}

	wc, err := fifo.OpenFifo(ctx, p.Request, unix.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	_, err = wc.Write(bound(request))
	wc.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	rc, err := fifo.OpenFifo(ctx, p.Response, unix.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadReply, err)
	}
	defer rc.Close()

	buf := make([]byte, MaxPayload)
	n, _ := rc.Read(buf)
	if n <= 0 {
		return nil, ErrNoResponse
	}
	return buf[:n], nil
}
