package process

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
)

// pipeEnd is the parent's end of one child channel. Close is once-guarded so
// the coordinator and the forwarder can both request it without racing.
type pipeEnd struct {
	f    *os.File
	once sync.Once
	err  error
}

func (p *pipeEnd) Read(b []byte) (int, error)  { return p.f.Read(b) }
func (p *pipeEnd) Write(b []byte) (int, error) { return p.f.Write(b) }

// Close closes the handle on the first call and returns that result on every
// call. Safe on a nil receiver.
func (p *pipeEnd) Close() error {
	if p == nil {
		return nil
	}
	p.once.Do(func() {
		p.err = p.f.Close()
	})
	return p.err
}

// Child is the handle of a launched child process. It is exclusively owned by
// one supervised invocation.
//
// Exited is closed exactly once, by the single goroutine calling cmd.Wait,
// after the process has been reaped. ExitCode and WaitErr are valid only after
// Exited is closed; the channel close publishes them.
type Child struct {
	cmd  *exec.Cmd
	name string
	log  *slog.Logger

	stdin  *pipeEnd // nil unless Spec.Stdin was supplied
	stdout *pipeEnd // nil unless Spec.Stdout was supplied
	stderr *pipeEnd // nil unless Spec.Stderr was supplied

	exited     chan struct{}
	exitCode   int
	waitErr    error
	waitFailed bool // Wait returned without a process status
}

// Launch starts the child described by spec. The child's channels are piped
// only where spec supplies a source or sink; the others inherit the parent's
// standard streams. On failure every pipe end created so far is closed and
// the returned error wraps ErrLaunchFailed.
func Launch(spec Spec) (*Child, error) {
	if spec.Path == "" {
		return nil, fmt.Errorf("%w: %w", ErrLaunchFailed, ErrEmptyPath)
	}
	log := spec.Logger
	if log == nil {
		log = slog.Default()
	}

	cmd := newCommand(spec.Path, spec.Args)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	configureSysProcAttr(cmd)

	c := &Child{
		cmd:    cmd,
		name:   spec.Path,
		log:    log,
		exited: make(chan struct{}),
	}

	// childEnds are the parent's copies of the ends handed to the child. They
	// must be closed after Start so the relays see EOF once the child exits.
	var childEnds []*os.File
	fail := func(err error) (*Child, error) {
		for _, f := range childEnds {
			_ = f.Close()
		}
		_ = c.stdin.Close()
		_ = c.stdout.Close()
		_ = c.stderr.Close()
		return nil, fmt.Errorf("%w: start %s: %w", ErrLaunchFailed, spec.Path, err)
	}

	cmd.Stdin = os.Stdin
	if spec.Stdin != nil {
		r, w, err := os.Pipe()
		if err != nil {
			return fail(fmt.Errorf("create stdin pipe: %w", err))
		}
		cmd.Stdin = r
		childEnds = append(childEnds, r)
		c.stdin = &pipeEnd{f: w}
	}

	cmd.Stdout = os.Stdout
	if spec.Stdout != nil {
		r, w, err := os.Pipe()
		if err != nil {
			return fail(fmt.Errorf("create stdout pipe: %w", err))
		}
		cmd.Stdout = w
		childEnds = append(childEnds, w)
		c.stdout = &pipeEnd{f: r}
	}

	cmd.Stderr = os.Stderr
	if spec.Stderr != nil {
		r, w, err := os.Pipe()
		if err != nil {
			return fail(fmt.Errorf("create stderr pipe: %w", err))
		}
		cmd.Stderr = w
		childEnds = append(childEnds, w)
		c.stderr = &pipeEnd{f: r}
	}

	if err := cmd.Start(); err != nil {
		return fail(err)
	}
	for _, f := range childEnds {
		_ = f.Close()
	}

	// cmd.Wait must be called exactly once. Every channel given to the child
	// is an *os.File, so exec starts no copy goroutines and Wait returns as
	// soon as the process is reaped, without touching the parent's pipe ends.
	go func() {
		err := cmd.Wait()
		c.waitErr = err
		c.exitCode, c.waitFailed = exitCodeOf(cmd.ProcessState, err)
		close(c.exited)
	}()

	log.Debug("process started", "process", c.name, "pid", c.PID())
	return c, nil
}

// PID returns the operating system process ID of the child.
func (c *Child) PID() int {
	return c.cmd.Process.Pid
}

// Exited returns a channel closed once the child has terminated and been
// reaped. It is level-triggered and safe to select on from any goroutine.
func (c *Child) Exited() <-chan struct{} {
	return c.exited
}

// HasExited reports whether Exited is already closed.
func (c *Child) HasExited() bool {
	select {
	case <-c.exited:
		return true
	default:
		return false
	}
}

// ExitCode returns the child's exit code. Only valid after Exited is closed;
// a child terminated by a signal reports 128 plus the signal number.
func (c *Child) ExitCode() int {
	return c.exitCode
}

// WaitErr returns the error from cmd.Wait. Only valid after Exited is closed.
func (c *Child) WaitErr() error {
	return c.waitErr
}

// waitFailure returns an ErrWaitFailed error if the exit status could not be
// collected, nil otherwise. Only valid after Exited is closed.
func (c *Child) waitFailure() error {
	if !c.waitFailed {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrWaitFailed, c.name, c.waitErr)
}

// stream returns the parent end for s, or nil when s is not piped.
func (c *Child) stream(s Stream) *pipeEnd {
	switch s {
	case Stdin:
		return c.stdin
	case Stdout:
		return c.stdout
	case Stderr:
		return c.stderr
	default:
		return nil
	}
}

// closeStream closes the parent end of s if it is piped. Repeated calls are
// no-ops.
func (c *Child) closeStream(s Stream) {
	if err := c.stream(s).Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		c.log.Debug("close channel", "process", c.name, "stream", s, "error", err)
	}
}

// closeOutputs closes the stdout and stderr pipe ends.
func (c *Child) closeOutputs() {
	c.closeStream(Stdout)
	c.closeStream(Stderr)
}

// closeAll closes every pipe end the parent holds.
func (c *Child) closeAll() {
	c.closeStream(Stdin)
	c.closeOutputs()
}

// exitCodeOf derives the exit code reported to the caller from a finished
// process state. ok is false when Wait failed without a status; the code is
// then WaitFailedExitCode, never a value that could read as aborted.
func exitCodeOf(state *os.ProcessState, waitErr error) (code int, ok bool) {
	if state == nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) || exitErr.ProcessState == nil {
			return WaitFailedExitCode, false
		}
		state = exitErr.ProcessState
	}
	if sc, signaled := signaledExitCode(state); signaled {
		return sc, true
	}
	return state.ExitCode(), true
}
