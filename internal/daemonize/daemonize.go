package daemonize

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Environment variable set in the detached child.
const EnvDetached = "PERSISTD_DETACHED"

var ErrDetach = errors.New("detach failed")

// Returns true in a process started by [Detach].
func IsDetached() bool {
	return os.Getenv(EnvDetached) == "1"
}

// Starts a detached copy of the current executable with the given arguments.
//
// The copy runs in a new session, has "/" as working directory, and reads from
// and writes to the null device. Returns its PID. The caller is expected to
// exit once Detach returns successfully.
func Detach(args []string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDetach, err)
	}

	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDetach, err)
	}
	defer devnull.Close()

	cmd := exec.Command(exe, args...)
	cmd.Env = append(os.Environ(), EnvDetached+"=1")
	cmd.Dir = "/"
	cmd.Stdin = devnull
	cmd.Stdout = devnull
	cmd.Stderr = devnull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDetach, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("%w: %w", ErrDetach, err)
	}
	return pid, nil
}
