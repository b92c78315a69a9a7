package procrelay

import "github.com/giantswarm/procrelay/internal/process"

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrLaunchFailed is returned by Run when the operating system could not
	// create the child process (missing executable, permission denied, ...).
	// Nothing has been started when it is returned.
	ErrLaunchFailed = process.ErrLaunchFailed

	// ErrEmptyPath is returned, wrapped together with ErrLaunchFailed, when
	// ProcessSpec.Path is empty.
	ErrEmptyPath = process.ErrEmptyPath

	// ErrChannelFault matches every *ChannelFault in Outcome.Faults.
	ErrChannelFault = process.ErrChannelFault

	// ErrWaitFailed is listed in Outcome.Faults when the child's exit status
	// could not be collected; Outcome.ExitCode is then 255.
	ErrWaitFailed = process.ErrWaitFailed
)

// ChannelFault describes a read or write failure on one of the child's
// streams or on the caller's source or sink. It unwraps to both
// ErrChannelFault and the underlying cause.
type ChannelFault = process.ChannelFault
