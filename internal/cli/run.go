package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/procrelay"
	"github.com/giantswarm/procrelay/internal/cmdline"
	"github.com/giantswarm/procrelay/internal/fileutil"
	"github.com/giantswarm/procrelay/internal/runlock"
)

// goneTimeout bounds the post-abort check that the child left the process
// table.
const goneTimeout = 5 * time.Second

type runOptions struct {
	root *rootOptions

	args         string
	dir          string
	stdin        string
	stdout       string
	stderr       string
	appendOutput bool
	atomicOutput bool
	timeout      time.Duration
	grace        time.Duration
	drainTimeout time.Duration
	chunkSize    int
	lockPath     string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	o := &runOptions{root: root}

	cmd := &cobra.Command{
		Use:   "run [flags] [--] PATH [ARG...]",
		Short: "Run a program and relay its streams",
		Long: "Run PATH with the given arguments. Without --stdin, --stdout or --stderr the " +
			"program shares procrelay's own stream; with them, input is forwarded line by " +
			"line and output is relayed to the named file as it is produced.\n\n" +
			"Arguments are never expanded by a shell. Use --args to pass a pre-joined " +
			"argument string verbatim instead of positional arguments.",
		Args: cobra.MinimumNArgs(1),
		RunE: o.run,
	}
	// Flags after PATH belong to the child.
	cmd.Flags().SetInterspersed(false)

	f := cmd.Flags()
	f.StringVar(&o.args, "args", "", "pre-joined argument string, split with Windows C runtime rules")
	f.StringVar(&o.dir, "dir", "", "working directory of the program")
	f.StringVar(&o.stdin, "stdin", "", `file forwarded line by line to the program's stdin ("-" for procrelay's stdin)`)
	f.StringVar(&o.stdout, "stdout", "", "file receiving the program's stdout")
	f.StringVar(&o.stderr, "stderr", "", "file receiving the program's stderr")
	f.BoolVar(&o.appendOutput, "append", false, "append to output files instead of truncating them")
	f.BoolVar(&o.atomicOutput, "atomic", false, "write output files via a temp file renamed into place on exit")
	f.DurationVar(&o.timeout, "timeout", 0, "abort the program after this long (0 disables)")
	f.DurationVar(&o.grace, "grace", procrelay.DefaultTerminateGrace, "time between SIGTERM and SIGKILL on abort (0 kills at once)")
	f.DurationVar(&o.drainTimeout, "drain-timeout", procrelay.DefaultDrainTimeout, "how long to keep relaying output after the program exits")
	f.IntVar(&o.chunkSize, "chunk-size", procrelay.DefaultChunkSize, "relay buffer size in bytes")
	f.StringVar(&o.lockPath, "lock", "", "hold an exclusive lock on this file while the program runs")

	return cmd
}

func (o *runOptions) validate(args []string) error {
	var errs []error
	if o.args != "" && len(args) > 1 {
		errs = append(errs, errors.New("--args cannot be combined with positional arguments"))
	}
	if o.appendOutput && o.atomicOutput {
		errs = append(errs, errors.New("--append and --atomic are mutually exclusive"))
	}
	if o.chunkSize <= 0 {
		errs = append(errs, fmt.Errorf("--chunk-size must be greater than 0, got %d", o.chunkSize))
	}
	if o.drainTimeout <= 0 {
		errs = append(errs, fmt.Errorf("--drain-timeout must be greater than 0, got %s", o.drainTimeout))
	}
	if o.grace < 0 {
		errs = append(errs, fmt.Errorf("--grace must not be negative, got %s", o.grace))
	}
	if o.timeout < 0 {
		errs = append(errs, fmt.Errorf("--timeout must not be negative, got %s", o.timeout))
	}
	if err := errors.Join(errs...); err != nil {
		return &exitError{code: ExitUsage, err: err}
	}
	return nil
}

func (o *runOptions) run(cmd *cobra.Command, args []string) (retErr error) {
	if err := o.validate(args); err != nil {
		return err
	}
	log := o.root.logger

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	if o.lockPath != "" {
		lock, err := runlock.Acquire(ctx, log, o.lockPath)
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	spec := procrelay.ProcessSpec{
		Path: args[0],
		Args: o.args,
		Dir:  o.dir,
	}
	if len(args) > 1 {
		spec.Args = cmdline.Join(args[1:])
	}

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil && retErr == nil {
				retErr = err
			}
		}
	}()

	if o.stdin != "" {
		src, err := fileutil.OpenSource(o.stdin)
		if err != nil {
			return err
		}
		closers = append(closers, src)
		spec.Stdin = src
	}
	sinkOpts := &fileutil.SinkOptions{Append: o.appendOutput, Atomic: o.atomicOutput}
	if o.stdout != "" {
		sink, err := fileutil.CreateSink(o.stdout, sinkOpts)
		if err != nil {
			return err
		}
		closers = append(closers, sink)
		spec.Stdout = sink
	}
	if o.stderr != "" {
		sink, err := fileutil.CreateSink(o.stderr, sinkOpts)
		if err != nil {
			return err
		}
		closers = append(closers, sink)
		spec.Stderr = sink
	}

	out, err := procrelay.Run(ctx, spec,
		procrelay.WithChunkSize(o.chunkSize),
		procrelay.WithDrainTimeout(o.drainTimeout),
		procrelay.WithTerminateGrace(o.grace),
		procrelay.WithLogger(log),
	)
	if err != nil {
		return &exitError{code: ExitLaunchFailed, err: err}
	}

	for _, f := range out.Faults {
		log.Warn("stream fault", "error", f)
	}

	if out.IsAborted() {
		log.Info("program aborted", "pid", out.PID, "cause", context.Cause(ctx))
		confirmGone(log, out.PID)
		return &exitError{code: ExitAborted}
	}

	log.Debug("program completed", "pid", out.PID, "exit_code", out.ExitCode)
	if out.ExitCode != 0 {
		return &exitError{code: out.ExitCode}
	}
	return nil
}

// confirmGone checks that an aborted program really left the process table
// and warns if it did not.
func confirmGone(log *slog.Logger, pid int) {
	if err := procrelay.WaitGone(context.Background(), pid, goneTimeout); err != nil {
		log.Warn("aborted program may still be running", "pid", pid, "error", err)
	}
}
