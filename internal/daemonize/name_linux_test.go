package daemonize

import (
	"os"
	"runtime"
	"strings"
	"testing"
)

func threadName(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("/proc/thread-self/comm")
	if err != nil {
		t.Skipf("thread name not readable: %v", err)
	}
	return strings.TrimSpace(string(data))
}

func TestSetProcessNameRenamesLockedThread(t *testing.T) {
	// The goroutine exits locked, so the renamed thread is discarded with it.
	runtime.LockOSThread()

	if err := SetProcessName("persistd-test"); err != nil {
		t.Fatalf("SetProcessName: %v", err)
	}
	if got := threadName(t); got != "persistd-test" {
		t.Fatalf("thread name = %q, want %q", got, "persistd-test")
	}
}

func TestSetProcessNameTruncates(t *testing.T) {
	runtime.LockOSThread()

	if err := SetProcessName("persistd-with-a-long-name"); err != nil {
		t.Fatalf("SetProcessName: %v", err)
	}
	if got := threadName(t); got != "persistd-with-a" {
		t.Fatalf("thread name = %q, want %q", got, "persistd-with-a")
	}
}
