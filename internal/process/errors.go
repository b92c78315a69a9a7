package process

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/giantswarm/procrelay/internal/sentinel"
)

// ErrLaunchFailed is returned by Launch and Supervise when the operating
// system could not create the child process. No relay or forwarder has been
// started when it is returned.
const ErrLaunchFailed = sentinel.Error("launch failed")

// ErrEmptyPath is returned (wrapped in ErrLaunchFailed) when Spec.Path is empty.
const ErrEmptyPath = sentinel.Error("executable path must not be empty")

// ErrChannelFault matches every *ChannelFault via errors.Is.
const ErrChannelFault = sentinel.Error("channel fault")

// ErrWaitFailed is recorded in Outcome.Faults when the child's exit could not
// be observed; the outcome then carries WaitFailedExitCode.
const ErrWaitFailed = sentinel.Error("wait for process failed")

// errChildExited is the cancellation cause of the combined signal when the
// child terminated on its own.
const errChildExited = sentinel.Error("child exited")

// Sentinel errors returned by WaitGone for invalid configuration.
const (
	// ErrIntervalNotPositive indicates a non-positive poll interval.
	ErrIntervalNotPositive = sentinel.Error("interval must be positive")

	// ErrTimeoutNotPositive indicates a non-positive timeout.
	ErrTimeoutNotPositive = sentinel.Error("timeout must be positive")
)

// Stream identifies one of the child's three standard channels.
type Stream int

const (
	// Stdin is the child's standard input.
	Stdin Stream = iota
	// Stdout is the child's standard output.
	Stdout
	// Stderr is the child's standard error.
	Stderr
)

// String returns the conventional stream name.
func (s Stream) String() string {
	switch s {
	case Stdin:
		return "stdin"
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return fmt.Sprintf("Stream(%d)", int(s))
	}
}

// ChannelFault describes a read or write failure on one of the child's
// channels or on the caller's source or sink. Faults end the affected relay
// or forwarder loop; they never fail the invocation.
type ChannelFault struct {
	Stream Stream
	Op     string // "read" or "write"
	Err    error
}

// Error implements the error interface.
func (f *ChannelFault) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Stream, f.Op, f.Err)
}

// Unwrap exposes both ErrChannelFault and the underlying cause to errors.Is.
func (f *ChannelFault) Unwrap() []error {
	return []error{ErrChannelFault, f.Err}
}

// isShutdownErr reports whether err is the normal way a channel ends: end of
// stream, a handle closed by the coordinator, or a pipe whose other end is gone.
func isShutdownErr(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, syscall.EPIPE)
}
