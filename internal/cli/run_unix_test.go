//go:build unix

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path) //nolint:gosec // G304: path is test-controlled
	require.NoError(t, err)
	return string(b)
}

func TestRunRelaysFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out", "stdout.log")
	errPath := filepath.Join(dir, "out", "stderr.log")
	require.NoError(t, os.WriteFile(in, []byte("first\r\nsecond\n"), 0o644))

	code, text := runCLI(t, "run",
		"--stdin", in, "--stdout", out, "--stderr", errPath,
		"--", "sh", "-c", "cat; echo oops >&2")

	require.Equal(t, ExitOK, code, text)
	require.Equal(t, "first\nsecond\n", readFile(t, out))
	require.Equal(t, "oops\n", readFile(t, errPath))
}

func TestRunPassesExitCodeThrough(t *testing.T) {
	t.Parallel()

	code, text := runCLI(t, "run", "sh", "-c", "exit 7")
	require.Equal(t, 7, code, text)
}

func TestRunPositionalArgumentsAreNotShellExpanded(t *testing.T) {
	t.Parallel()
	out := filepath.Join(t.TempDir(), "out.log")

	code, text := runCLI(t, "run", "--stdout", out, "printf", "%s|", "$HOME", "a b", `q"t`)
	require.Equal(t, ExitOK, code, text)
	require.Equal(t, `$HOME|a b|q"t|`, readFile(t, out))
}

func TestRunPreJoinedArgs(t *testing.T) {
	t.Parallel()
	out := filepath.Join(t.TempDir(), "out.log")

	code, text := runCLI(t, "run", "--stdout", out, "--args", `"%s-" one "two three"`, "printf")
	require.Equal(t, ExitOK, code, text)
	require.Equal(t, "one-two three-", readFile(t, out))
}

func TestRunTimeoutAborts(t *testing.T) {
	t.Parallel()

	code, text := runCLI(t, "run", "--timeout", "100ms", "--", "sleep", "30")
	require.Equal(t, ExitAborted, code, text)
}

func TestRunAtomicOutputKeepsCapturedBytes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out := filepath.Join(dir, "out.log")

	code, text := runCLI(t, "run", "--atomic", "--stdout", out, "--", "sh", "-c", "echo partial; exit 3")
	require.Equal(t, 3, code, text)
	require.Equal(t, "partial\n", readFile(t, out))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRunAppendOutput(t *testing.T) {
	t.Parallel()
	out := filepath.Join(t.TempDir(), "out.log")
	require.NoError(t, os.WriteFile(out, []byte("old\n"), 0o644))

	code, text := runCLI(t, "run", "--append", "--stdout", out, "echo", "new")
	require.Equal(t, ExitOK, code, text)
	require.Equal(t, "old\nnew\n", readFile(t, out))
}

func TestRunWithLock(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	lock := filepath.Join(dir, "locks", "run.lock")

	code, text := runCLI(t, "run", "--lock", lock, "true")
	require.Equal(t, ExitOK, code, text)
	require.FileExists(t, lock)
}
