// Parses flags, configures logging, and runs persistd in client or daemon
// mode.
//
// Without a subcommand persistd opens an interactive session, launching a
// daemon first if none is running. The status, get, set and shutdown
// subcommands run a single transaction. The hidden --daemon flag runs the
// daemon itself and is only used when a client launches one.
//
// Global flags:
//
//	-q, --quiet         Suppress informational output.
//	-v, --verbose       Enable verbose output.
//	-d, --debug         Enable debug output.
//	-c, --config        Config file path.
//	-r, --runtime-dir   Directory for the marker and FIFOs.
//
// Flags override build-time defaults set via linker flags and values from the
// config file.
package cli
