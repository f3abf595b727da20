package channel

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/containerd/fifo"
	"github.com/cruciblehq/persistd/internal/paths"
	"golang.org/x/sys/unix"
)

func newPair(t *testing.T) Pair {
	t.Helper()
	p := NewPair(paths.New(t.TempDir()))
	if err := p.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { p.Remove() })
	return p
}

// Serves a single transaction with the given handler on a background goroutine.
func serveOne(t *testing.T, p Pair, handle func([]byte) []byte) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() {
		ctx := context.Background()
		e := p.Endpoint(0)
		req, err := e.AcceptOneRequest(ctx)
		if err != nil {
			errc <- err
			return
		}
		errc <- e.SendOneResponse(ctx, handle(req))
	}()
	return errc
}

func TestCreateAndRemove(t *testing.T) {
	p := NewPair(paths.New(t.TempDir()))

	if p.Exists() {
		t.Fatal("Exists = true before Create")
	}
	if err := p.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !p.Exists() {
		t.Fatal("Exists = false after Create")
	}
	if err := p.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !p.Gone() {
		t.Fatal("Gone = false after Remove")
	}
	if err := p.Remove(); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}

func TestCreateReplacesStaleFiles(t *testing.T) {
	p := NewPair(paths.New(t.TempDir()))

	if err := os.WriteFile(p.Request, []byte("stale"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if p.Exists() {
		t.Fatal("Exists = true for a regular file")
	}
	if err := p.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ok, err := fifo.IsFifo(p.Request)
	if err != nil || !ok {
		t.Fatalf("IsFifo = %v, %v; want true", ok, err)
	}
}

func TestTransactRoundTrip(t *testing.T) {
	p := newPair(t)
	errc := serveOne(t, p, func(req []byte) []byte {
		return append([]byte("echo: "), req...)
	})

	resp, err := p.Transact(context.Background(), []byte("hello"))
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if string(resp) != "echo: hello" {
		t.Fatalf("resp = %q, want %q", resp, "echo: hello")
	}
	if err := <-errc; err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestTransactTruncates(t *testing.T) {
	p := newPair(t)
	got := make(chan int, 1)
	errc := serveOne(t, p, func(req []byte) []byte {
		got <- len(req)
		return bytes.Repeat([]byte("r"), 2*MaxPayload)
	})

	resp, err := p.Transact(context.Background(), []byte(strings.Repeat("q", 2*MaxPayload)))
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if n := <-got; n != MaxPayload {
		t.Fatalf("request length = %d, want %d", n, MaxPayload)
	}
	if len(resp) != MaxPayload {
		t.Fatalf("response length = %d, want %d", len(resp), MaxPayload)
	}
	if err := <-errc; err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestTransactNoDaemon(t *testing.T) {
	p := NewPair(paths.New(t.TempDir()))

	_, err := p.Transact(context.Background(), []byte("STATUS"))
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("err = %v, want ErrConnect", err)
	}
	if !errdefs.IsUnavailable(err) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestTransactEmptyRequest(t *testing.T) {
	p := newPair(t)
	if _, err := p.Transact(context.Background(), nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestTransactNoResponse(t *testing.T) {
	p := newPair(t)
	errc := serveOne(t, p, func([]byte) []byte { return nil })

	_, err := p.Transact(context.Background(), []byte("x"))
	if !errors.Is(err, ErrNoResponse) {
		t.Fatalf("err = %v, want ErrNoResponse", err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestAcceptEmptyWrite(t *testing.T) {
	p := newPair(t)

	type result struct {
		req []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		req, err := p.Endpoint(0).AcceptOneRequest(context.Background())
		done <- result{req, err}
	}()

	wc, err := fifo.OpenFifo(context.Background(), p.Request, unix.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	wc.Close()

	r := <-done
	if r.err != nil {
		t.Fatalf("AcceptOneRequest: %v", r.err)
	}
	if len(r.req) != 0 {
		t.Fatalf("request = %q, want empty", r.req)
	}
}

func TestAcceptCancelled(t *testing.T) {
	p := newPair(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Endpoint(0).AcceptOneRequest(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestSendNoReader(t *testing.T) {
	p := newPair(t)

	start := time.Now()
	err := p.Endpoint(50*time.Millisecond).SendOneResponse(context.Background(), []byte("lost"))
	if err == nil {
		t.Fatal("SendOneResponse succeeded without a reader")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("reply timeout not honoured")
	}
}

func TestSendFinalResponseReleasesBeforeWrite(t *testing.T) {
	p := newPair(t)

	goneAtRelease := make(chan bool, 1)
	errc := make(chan error, 1)
	go func() {
		ctx := context.Background()
		e := p.Endpoint(0)
		if _, err := e.AcceptOneRequest(ctx); err != nil {
			errc <- err
			return
		}
		errc <- e.SendFinalResponse(ctx, []byte("bye"), func() {
			p.Remove()
			goneAtRelease <- p.Gone()
		})
	}()

	resp, err := p.Transact(context.Background(), []byte("SHUTDOWN"))
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if string(resp) != "bye" {
		t.Fatalf("resp = %q, want %q", resp, "bye")
	}
	if !p.Gone() {
		t.Fatal("FIFOs still present when the reply arrived")
	}
	if !<-goneAtRelease {
		t.Fatal("Gone = false inside release")
	}
	if err := <-errc; err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestSendFinalResponseReleasesWithoutReader(t *testing.T) {
	p := newPair(t)

	released := false
	err := p.Endpoint(50*time.Millisecond).SendFinalResponse(context.Background(), []byte("bye"), func() {
		released = true
	})
	if err == nil {
		t.Fatal("SendFinalResponse succeeded without a reader")
	}
	if !released {
		t.Fatal("release not called after a failed open")
	}
}

func TestRetireWakesBlockedWriter(t *testing.T) {
	p := newPair(t)

	errc := make(chan error, 1)
	go func() {
		_, err := p.Transact(context.Background(), []byte("STATUS"))
		errc <- err
	}()

	// Give the writer time to block in open(2).
	time.Sleep(50 * time.Millisecond)

	if err := p.Retire(); err != nil {
		t.Fatalf("Retire: %v", err)
	}
	if !p.Gone() {
		t.Fatal("Gone = false after Retire")
	}

	select {
	case err := <-errc:
		if err == nil {
			t.Fatal("Transact succeeded against a retired pair")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("writer still blocked after Retire")
	}
}
