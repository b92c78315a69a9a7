package procrelay

import (
	"context"
	"io"
	"time"

	"github.com/giantswarm/procrelay/internal/core"
	"github.com/giantswarm/procrelay/internal/process"
)

// ProcessSpec describes the child process to run. It is read once when Run
// starts and must not be modified while Run is in progress.
type ProcessSpec struct {
	// Path is the executable to run: an absolute or relative path, or a
	// bare name looked up in PATH. Required.
	Path string

	// Args is the complete argument string, pre-joined. It is never
	// interpreted by a shell. On Windows it is handed to the program as its
	// command line; elsewhere it is split with the Microsoft C runtime rules
	// (blanks separate arguments, double quotes group, backslash escapes a
	// quote).
	Args string

	// Dir is the working directory. Empty means the caller's.
	Dir string

	// Env is the environment in "key=value" form. Nil means the caller's.
	Env []string

	// Stdin, when set, is read line by line and each line is written to the
	// child's standard input followed by a line terminator. The child's
	// stdin is closed when Stdin is exhausted. Nil leaves the child reading
	// the caller's own standard input.
	Stdin io.Reader

	// Stdout and Stderr, when set, receive the child's output bytes as they
	// arrive, unmodified and in order. Nil leaves the stream connected to
	// the caller's own stdout or stderr.
	//
	// Writes to each sink come from a single goroutine, but Stdout and
	// Stderr are written concurrently; a shared sink must be safe for
	// concurrent use.
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome is the result of a Run whose child was launched: Completed with an
// exit code, or Aborted.
type Outcome = process.Outcome

// Status is the kind of an Outcome.
type Status = process.Status

const (
	// StatusCompleted means the child exited on its own; Outcome.ExitCode
	// holds its exit code.
	StatusCompleted = process.StatusCompleted

	// StatusAborted means the context was canceled before the child exited.
	StatusAborted = process.StatusAborted
)

// AbortedExitCode is the value Outcome.Code returns for an aborted run. It
// never collides with a real exit code.
const AbortedExitCode = process.AbortedExitCode

// Stream identifies one of the child's standard streams in a ChannelFault.
type Stream = process.Stream

const (
	StreamStdin  = process.Stdin
	StreamStdout = process.Stdout
	StreamStderr = process.Stderr
)

// Run launches the child described by spec and supervises it until it exits
// or ctx is canceled.
//
// Run returns an error only when the child could not be launched; the error
// wraps ErrLaunchFailed and no input or output has been touched. Otherwise
// the returned Outcome is Completed with the child's exit code if the child
// exited first, or Aborted if ctx was canceled first, in which case the
// child has been killed. In both cases every pipe is closed and every
// relay has finished before Run returns.
//
// Run never retries a failed launch.
func Run(ctx context.Context, spec ProcessSpec, opts ...Option) (Outcome, error) {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return core.Run(ctx, process.Spec{
		Path:   spec.Path,
		Args:   spec.Args,
		Dir:    spec.Dir,
		Env:    spec.Env,
		Stdin:  spec.Stdin,
		Stdout: spec.Stdout,
		Stderr: spec.Stderr,
	}, cfg.RunConfig)
}

// WaitGone blocks until no process with the given pid exists, ctx is
// canceled, or timeout elapses. The child of an aborted Run has already
// been reaped when Run returns, so WaitGone(ctx, out.PID, ...) is a cheap
// confirmation; it also serves for descendants whose PIDs the caller knows.
func WaitGone(ctx context.Context, pid int, timeout time.Duration) error {
	return process.WaitGone(ctx, pid, DefaultGonePollInterval, timeout)
}
