// Package command parses request payloads and applies them to the daemon
// state.
//
// The grammar is plain text, case-sensitive, with exact keyword matches:
//
//	STATUS
//	GET <key>
//	SET <key> <value...>
//	SHUTDOWN
//
// [Parse] turns one payload into a [Command]; [Apply] executes it against a
// [store.State] and produces the [Reply] text sent back to the client. Every
// failure a request can cause (malformed SET, unknown keyword, missing key)
// becomes reply text, never an error returned to the serve loop.
package command
