//go:build unix

package process

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"github.com/giantswarm/procrelay/internal/cmdline"
)

// lineTerminator is appended to every line forwarded to the child's stdin.
const lineTerminator = "\n"

// newCommand builds the command for path with the argument string split by
// the C runtime rules. No shell is involved.
func newCommand(path, args string) *exec.Cmd {
	return exec.Command(path, cmdline.Split(args)...)
}

// signaledExitCode reports 128+signal for a child terminated by a signal,
// the convention shells use, so that such exits never collide with
// AbortedExitCode.
func signaledExitCode(state *os.ProcessState) (int, bool) {
	status, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return 0, false
	}
	return 128 + int(status.Signal()), true
}

// processExists reports whether pid is still present in the process table.
// Signal 0 performs the existence and permission checks without delivering
// anything; EPERM means the process exists but belongs to someone else.
func processExists(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
