// Package store holds the daemon's in-memory state.
//
// A [State] maps string keys to string values and carries the counters that
// live as long as the daemon: the number of STATUS queries answered and the
// time serving began. It is owned by the daemon's single serve loop and is
// deliberately unsynchronized. Nothing is persisted; a restarted daemon starts
// from the seed entries again.
package store
