// Package daemonize detaches the daemon from the process that launched it.
//
// Go programs cannot fork safely, so detaching re-executes the current binary
// with the same arguments as the leader of a new session, with "/" as working
// directory and all standard streams bound to the null device. The child is
// marked through an environment variable so that it recognises itself and
// carries on as the daemon while the original process exits.
package daemonize
