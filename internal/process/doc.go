// Package process supervises a single external child process.
//
// Supervise launches the child, forwards caller input to its stdin line by
// line, relays its stdout and stderr to caller sinks in bounded chunks, and
// coordinates exit. The exit coordinator is an explicit state machine
// (Running, Exited or Aborted, then Closed) and is the only party that
// disposes of the child's pipe handles, so no handle is closed twice and none
// is closed while a relay may still be reading it, except on the abort path
// where closing first is what unblocks the relays.
//
// Exactly one Outcome is produced per invocation: Completed with the child's
// exit code when it exited on its own, or Aborted when the caller's context
// was canceled first. Only launch failures are returned as errors.
package process
