package process

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// AbortedExitCode is what Outcome.Code reports for an aborted invocation.
// It is distinct from every exit code Completed can carry: exit codes are
// non-negative, and children killed by a foreign signal report 128+signal.
const AbortedExitCode = -1

// WaitFailedExitCode is the exit code of a Completed outcome whose child
// ended without the operating system reporting its status.
const WaitFailedExitCode = 255

// DefaultChunkSize is the relay buffer size used when Spec.ChunkSize is zero.
const DefaultChunkSize = 1024

// DefaultDrainTimeout bounds how long the coordinator waits, after a natural
// exit, for the relays to reach end of stream before closing the pipes
// itself. Output stays open past exit only when a descendant of the child
// inherited the pipe.
const DefaultDrainTimeout = 10 * time.Second

// Spec describes one child process invocation. It is consumed once by
// Supervise and must not be modified while the invocation runs.
type Spec struct {
	Path string // Executable path or name looked up in PATH
	Args string // Single pre-joined argument string; never shell-expanded
	Dir  string // Working directory; empty inherits the parent's
	Env  []string

	// Stdin, Stdout and Stderr are optional. A nil field leaves the child's
	// corresponding channel connected to the parent's own stream and starts
	// no forwarder or relay for it.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ChunkSize      int           // Relay read size; zero uses DefaultChunkSize
	DrainTimeout   time.Duration // Zero uses DefaultDrainTimeout
	TerminateGrace time.Duration // Zero kills immediately on abort

	Logger *slog.Logger // Optional, defaults to slog.Default()
}

func (s Spec) withDefaults() Spec {
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.DrainTimeout <= 0 {
		s.DrainTimeout = DefaultDrainTimeout
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return s
}

// Status is the kind of an Outcome.
type Status int

const (
	// StatusCompleted means the child exited on its own; ExitCode is valid.
	StatusCompleted Status = iota + 1
	// StatusAborted means the caller canceled before the child exited.
	StatusAborted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the single result of a supervised invocation.
type Outcome struct {
	Status   Status
	ExitCode int // Valid only when Status is StatusCompleted
	PID      int

	// Faults lists channel faults that occurred while the child was alive and
	// no cancellation was pending, plus an ErrWaitFailed error when the exit
	// status could not be collected. They are diagnostic and never change
	// Status.
	Faults []error
}

// Completed returns the Outcome of a child that exited with code.
func Completed(code int) Outcome {
	return Outcome{Status: StatusCompleted, ExitCode: code}
}

// Aborted returns the Outcome of a canceled invocation.
func Aborted() Outcome {
	return Outcome{Status: StatusAborted, ExitCode: AbortedExitCode}
}

// IsAborted reports whether the caller's cancellation pre-empted the child.
func (o Outcome) IsAborted() bool {
	return o.Status == StatusAborted
}

// Code returns the exit code, or AbortedExitCode for an aborted invocation.
func (o Outcome) Code() int {
	if o.Status != StatusCompleted {
		return AbortedExitCode
	}
	return o.ExitCode
}

// String formats the outcome as "completed(3)" or "aborted".
func (o Outcome) String() string {
	if o.Status == StatusCompleted {
		return fmt.Sprintf("completed(%d)", o.ExitCode)
	}
	return o.Status.String()
}
