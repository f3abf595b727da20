// Locates the files shared between the persistd client and daemon.
//
// Every artifact lives in one runtime directory: the liveness marker, the two
// FIFOs, and the daemon log. On Linux the directory follows XDG conventions
// ($XDG_RUNTIME_DIR/persistd); elsewhere it falls back to the cache home. A
// [Layout] pins the directory once so the client and a daemon it launches
// agree on the same paths even when the default is overridden.
package paths
