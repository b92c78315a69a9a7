package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// terminate forcibly ends the child and blocks until it has been reaped.
//
// With a zero grace the child is killed at once. With a positive grace it is
// first sent SIGTERM and killed only if it is still running when the grace
// period ends. Platforms that cannot deliver SIGTERM fall back to an
// immediate kill.
//
// Kill on a process that already exited returns os.ErrProcessDone, which is
// harmless and ignored.
func (c *Child) terminate(grace time.Duration) error {
	if c.HasExited() {
		return nil
	}

	if grace > 0 {
		if err := c.cmd.Process.Signal(syscall.SIGTERM); err == nil {
			killTimer := time.AfterFunc(grace, func() {
				_ = c.cmd.Process.Kill()
			})
			// Cancels the pending kill if the child honors SIGTERM in time.
			defer killTimer.Stop()
		} else if err := c.kill(); err != nil {
			return err
		}
	} else if err := c.kill(); err != nil {
		return err
	}

	// SIGKILL cannot be caught and every channel is a plain file, so Wait
	// returns as soon as the kernel has torn the process down.
	<-c.exited
	return expectSignalExit(c.waitErr, c.name)
}

func (c *Child) kill() error {
	if err := c.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("%s: kill: %w", c.name, err)
	}
	return nil
}

// expectSignalExit interprets an error from cmd.Wait after sending a
// termination signal. Exit errors caused by SIGTERM or SIGKILL are expected
// and treated as successful stops. So is SIGPIPE: the output pipes are
// closed before the child is terminated, and a child still writing dies of
// it first.
func expectSignalExit(err error, name string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			sig := status.Signal()
			if sig == syscall.SIGTERM || sig == syscall.SIGKILL || sig == syscall.SIGPIPE {
				return nil
			}
		}
		// A child that handled SIGTERM and exited with its own code
		// still stopped as asked.
		if exitErr.Exited() {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", name, err)
}
