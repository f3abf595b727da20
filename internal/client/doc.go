// Package client talks to the persistd daemon from short-lived processes.
//
// A [Client] checks whether a daemon is alive, launches one through a
// [Launcher] when none is, and runs transactions over the FIFO pair. Every
// transaction produces printable text: either the daemon's reply or an
// "ERROR: ..." line describing why no reply could be obtained.
//
// There is no timeout on a transaction. A client that reaches a FIFO pair
// left behind by a daemon that died mid-transaction can block until the
// caller's context ends; with [context.Background] that is forever.
//
// Example usage:
//
//	c := client.New(paths.New(""))
//	if _, err := c.EnsureDaemon(ctx, client.ProcessLauncher{Layout: layout}); err != nil {
//	    return err
//	}
//	fmt.Println(c.Transact(ctx, "STATUS"))
package client
