//go:build windows

package process

import (
	"os"
	"os/exec"
	"syscall"
)

// lineTerminator is appended to every line forwarded to the child's stdin.
const lineTerminator = "\r\n"

// createNoWindow is CREATE_NO_WINDOW from the Win32 process creation flags.
const createNoWindow = 0x08000000

// newCommand builds the command for path. The argument string is handed to
// CreateProcess verbatim; splitting it is the target program's job.
func newCommand(path, args string) *exec.Cmd {
	cmd := exec.Command(path)
	cmdLine := syscall.EscapeArg(path)
	if args != "" {
		cmdLine += " " + args
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       cmdLine,
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
	return cmd
}

// signaledExitCode never applies on Windows; termination always yields an
// exit code.
func signaledExitCode(_ *os.ProcessState) (int, bool) {
	return 0, false
}

// processExists reports whether pid can still be opened. FindProcess opens a
// handle on Windows and fails when the process is gone.
func processExists(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = p.Release()
	return true
}
