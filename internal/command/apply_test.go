package command

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/cruciblehq/persistd/internal/store"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func apply(s *store.State, payload string) Reply {
	return Apply(s, Parse([]byte(payload)), epoch)
}

func TestApplyStatus(t *testing.T) {
	s := store.New(epoch)

	r := Apply(s, Parse([]byte("STATUS")), epoch.Add(3*time.Second))
	want := "Status: Running\nQueries: 1\nUptime: 3 seconds\nState entries: 2\n"
	if r.Text != want {
		t.Fatalf("Text = %q, want %q", r.Text, want)
	}
	if r.Shutdown || r.Err != nil {
		t.Fatalf("reply = %+v, want plain success", r)
	}
}

func TestApplyStatusCounts(t *testing.T) {
	s := store.New(epoch)

	for i := 1; i <= 3; i++ {
		r := apply(s, "STATUS")
		if !strings.Contains(r.Text, "Queries: "+string(rune('0'+i))+"\n") {
			t.Fatalf("STATUS #%d = %q", i, r.Text)
		}
	}

	apply(s, "GET version")
	apply(s, "SET a b")
	r := apply(s, "STATUS")
	if !strings.Contains(r.Text, "Queries: 4\n") {
		t.Fatalf("STATUS = %q, want Queries: 4", r.Text)
	}
	if !strings.Contains(r.Text, "State entries: 3\n") {
		t.Fatalf("STATUS = %q, want State entries: 3", r.Text)
	}
}

func TestApplySetGet(t *testing.T) {
	s := store.New(epoch)

	r := apply(s, "SET greeting hello there")
	if r.Text != "OK: Set greeting = hello there" {
		t.Fatalf("SET = %q", r.Text)
	}

	r = apply(s, "GET greeting")
	if r.Text != "VALUE: hello there" {
		t.Fatalf("GET = %q", r.Text)
	}
}

func TestApplyOverwrite(t *testing.T) {
	s := store.New(epoch)

	apply(s, "SET a 1")
	apply(s, "SET a 2")
	if r := apply(s, "GET a"); r.Text != "VALUE: 2" {
		t.Fatalf("GET a = %q, want VALUE: 2", r.Text)
	}
}

func TestApplyGetMissing(t *testing.T) {
	s := store.New(epoch)

	r := apply(s, "GET nope")
	if r.Text != NotFoundReply {
		t.Fatalf("GET nope = %q, want %q", r.Text, NotFoundReply)
	}
	if !errdefs.IsNotFound(r.Err) {
		t.Fatalf("Err = %v, want not found", r.Err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, GET must not create entries", s.Len())
	}
}

func TestApplyMalformedSet(t *testing.T) {
	s := store.New(epoch)

	r := apply(s, "SET onlykey")
	if r.Text != InvalidSetReply {
		t.Fatalf("SET onlykey = %q, want %q", r.Text, InvalidSetReply)
	}
	if _, err := s.Get("onlykey"); !errdefs.IsNotFound(err) {
		t.Fatalf("onlykey was created: %v", err)
	}
}

func TestApplyShutdown(t *testing.T) {
	r := apply(store.New(epoch), "SHUTDOWN")
	if !r.Shutdown {
		t.Fatal("Shutdown = false")
	}
	if r.Text != ShutdownReply {
		t.Fatalf("Text = %q, want %q", r.Text, ShutdownReply)
	}
}

func TestApplyUnknown(t *testing.T) {
	r := apply(store.New(epoch), "DELETE a")
	if r.Text != UnknownReply {
		t.Fatalf("Text = %q, want %q", r.Text, UnknownReply)
	}
	if !errors.Is(r.Err, ErrUnknownCommand) {
		t.Fatalf("Err = %v, want ErrUnknownCommand", r.Err)
	}
	if r.Shutdown {
		t.Fatal("unknown command requested shutdown")
	}
}
