// Package server implements the persistd daemon.
//
// The daemon owns a [store.State] and serves it over the FIFO pair from the
// channel package, one transaction at a time on a single goroutine. Each
// transaction reads one request, parses and applies it with the command
// package, and writes one response. A SHUTDOWN request is answered first and
// then ends the loop; cancelling the context passed to [Server.Serve] ends it
// too.
//
// Startup records the daemon PID in the liveness marker and recreates the
// FIFOs. Teardown removes the FIFOs and the marker however serving ended, so
// a client checking liveness afterwards sees no daemon.
//
// Example usage:
//
//	srv := server.New(server.Config{RuntimeDir: dir})
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server
