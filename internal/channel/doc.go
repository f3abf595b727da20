// Package channel carries one request and one response at a time between a
// persistd client and the daemon over a pair of named FIFOs.
//
// The daemon creates both FIFOs when it starts and removes them when it stops
// ([Pair.Create], [Pair.Remove]). A transaction is strictly ordered: the
// client opens the request FIFO for writing, writes, closes; then opens the
// response FIFO for reading, reads, closes. The daemon mirrors each step
// through the [Duplex] interface.
//
// Opening a FIFO blocks until the other side opens it too. That blocking is
// the only synchronization in the system: while the daemon is busy with one
// transaction it does not hold the request FIFO open, so a second client
// waits in its open call until the daemon comes back for the next request.
// Which waiting client goes first is up to the kernel.
//
// Payloads are bounded by [MaxPayload] in both directions. Longer payloads are
// truncated rather than rejected.
//
// Example usage:
//
//	pair := channel.NewPair(paths.New(""))
//	resp, err := pair.Transact(ctx, []byte("GET version"))
//	if err != nil {
//	    return err
//	}
package channel
