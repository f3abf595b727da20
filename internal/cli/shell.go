package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cruciblehq/persistd/internal/client"
)

const shellHelp = `
Connected to daemon. Commands:
  STATUS           - Get daemon status
  GET <key>        - Get value from daemon state
  SET <key> <val>  - Set value in daemon state
  SHUTDOWN         - Shutdown daemon
  EXIT             - Exit client only

`

// Runs one request and returns printable reply text.
type transactor interface {
	Transact(ctx context.Context, request string) string
}

// Represents the default 'persistd shell' command.
type ShellCmd struct{}

// Executes the interactive session.
//
// Launches a daemon if none is running, then reads commands from standard
// input until EXIT, SHUTDOWN, or end of input.
func (c *ShellCmd) Run(ctx context.Context, s *Settings) error {
	cl := client.New(s.Layout)

	fmt.Printf("Client Process Started (PID: %d)\n", os.Getpid())

	if err := ensureDaemon(ctx, cl, s, os.Stdout); err != nil {
		return err
	}

	return repl(ctx, os.Stdin, os.Stdout, cl, isatty(os.Stdin))
}

// Launches a daemon when none is running.
//
// Only a failure to run the launcher is returned. A daemon that is slow to
// come up is logged; the transactions that follow report whether it made it.
func ensureDaemon(ctx context.Context, cl *client.Client, s *Settings, out io.Writer) error {
	l := client.LauncherFunc(func(ctx context.Context) error {
		fmt.Fprintln(out, "Starting daemon process...")
		return s.launcher().Launch(ctx)
	})

	_, err := cl.EnsureDaemon(ctx, l)
	if errors.Is(err, client.ErrNotReady) {
		slog.Warn("daemon is not ready yet", "error", err)
		return nil
	}
	return err
}

// Reads lines from in and prints one reply per command to out.
//
// EXIT or exit leaves without contacting the daemon; SHUTDOWN leaves after
// printing the daemon's acknowledgement. Blank lines are skipped. The prompt
// is only printed when requested, so piped input produces clean output.
func repl(ctx context.Context, in io.Reader, out io.Writer, tx transactor, prompt bool) error {
	fmt.Fprint(out, shellHelp)

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		if line == "EXIT" || line == "exit" {
			break
		}
		if line == "" {
			continue
		}

		fmt.Fprintln(out, tx.Transact(ctx, line))

		if line == "SHUTDOWN" {
			break
		}
	}

	fmt.Fprintln(out, "Client exiting.")
	return scanner.Err()
}
