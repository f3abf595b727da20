package channel

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/containerd/fifo"
	"golang.org/x/sys/unix"
)

// Daemon side of a transaction.
//
// AcceptOneRequest blocks until one client has written a request and returns
// its bytes; an empty result means a client connected without sending
// anything. SendOneResponse delivers one payload to the client waiting on the
// response side. SendFinalResponse does the same for the last reply of the
// daemon, running release once the client is attached and before the payload
// is written. Implementations serve one transaction at a time.
type Duplex interface {
	AcceptOneRequest(ctx context.Context) ([]byte, error)
	SendOneResponse(ctx context.Context, payload []byte) error
	SendFinalResponse(ctx context.Context, payload []byte, release func()) error
}

// FIFO-backed [Duplex].
type Endpoint struct {
	pair         Pair
	replyTimeout time.Duration // Zero waits for a reader indefinitely.
}

// Returns the daemon endpoint of the pair.
//
// replyTimeout bounds how long SendOneResponse waits for a client to open the
// response FIFO. Zero means no bound.
func (p Pair) Endpoint(replyTimeout time.Duration) *Endpoint {
	return &Endpoint{pair: p, replyTimeout: replyTimeout}
}

// Opens the request FIFO, performs a single read of up to [MaxPayload]
// bytes, and closes it.
//
// The open blocks until a client opens the FIFO for writing or ctx is done.
// A client that closes without writing yields an empty payload and a nil
// error.
func (e *Endpoint) AcceptOneRequest(ctx context.Context) ([]byte, error) {
	rc, err := fifo.OpenFifo(ctx, e.pair.Request, unix.O_RDONLY, 0)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: open request: %w", ErrChannel, err)
	}

	buf := make([]byte, MaxPayload)
	n, err := rc.Read(buf)
	rc.Close()

	// A cancelled open may still complete against the helper that unblocked it.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if n <= 0 {
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: read request: %w", ErrChannel, err)
		}
		return nil, nil
	}
	return buf[:n], nil
}

// Opens the response FIFO, writes the payload once, and closes it.
//
// Payloads over [MaxPayload] bytes are truncated. When no client opens the
// response side before ctx is done or the reply timeout expires, an error is
// returned and the payload is dropped.
func (e *Endpoint) SendOneResponse(ctx context.Context, payload []byte) error {
	return e.send(ctx, payload, nil)
}

// Like [Endpoint.SendOneResponse], but calls release between the open and the
// write.
//
// The open file survives the removal of its path, so release may unlink the
// FIFOs and the client still receives the payload. By the time the client has
// read it, whatever release tore down is already gone. Release is called even
// when the open fails.
func (e *Endpoint) SendFinalResponse(ctx context.Context, payload []byte, release func()) error {
	return e.send(ctx, payload, release)
}

func (e *Endpoint) send(ctx context.Context, payload []byte, release func()) error {
	if e.replyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.replyTimeout)
		defer cancel()
	}

	wc, err := fifo.OpenFifo(ctx, e.pair.Response, unix.O_WRONLY, 0)
	if release != nil {
		release()
	}
	if err != nil {
		return fmt.Errorf("%w: open response: %w", ErrChannel, err)
	}
	defer wc.Close()

	if _, err := wc.Write(bound(payload)); err != nil {
		return fmt.Errorf("%w: write response: %w", ErrChannel, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: no reader: %w", ErrChannel, err)
	}
	return nil
}
