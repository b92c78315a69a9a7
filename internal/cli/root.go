package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Process exit codes used by the command itself. A completed child's exit
// code is passed through unchanged.
const (
	ExitOK           = 0
	ExitError        = 1
	ExitUsage        = 2
	ExitLaunchFailed = 127
	ExitAborted      = 130
)

// exitError carries the process exit code the command should end with.
// A nil err means the code is the whole story and nothing is printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}

type rootOptions struct {
	logLevel string
	logger   *slog.Logger
}

// NewRootCmd builds the procrelay command tree. Each call returns an
// independent tree, so tests can execute commands concurrently.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "procrelay",
		Short: "Run a program and relay its standard streams",
		Long: "procrelay launches a program, feeds it input line by line, relays its " +
			"output and error streams as they are produced, and exits with the " +
			"program's exit code. Interrupting procrelay kills the program.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var lvl slog.Level
			if err := lvl.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return usageErrorf("invalid --log-level %q: %w", opts.logLevel, err)
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})).
				With("component", "procrelay")
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(opts), newVersionCmd())
	return root
}

// Execute runs the command tree against os.Args and returns the process
// exit code.
func Execute() int {
	return execute(context.Background(), NewRootCmd(), os.Args[1:])
}

func execute(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	var ee *exitError
	if err != nil && (!errors.As(err, &ee) || ee.err != nil) {
		fmt.Fprintln(root.ErrOrStderr(), "procrelay:", err)
	}
	return ExitCode(err)
}
