package process

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// State is the exit coordinator's position in its state machine:
// Running, then Exited or Aborted, then Closed.
type State int32

const (
	// StateRunning: the child is alive and no cancellation has been honored.
	StateRunning State = iota
	// StateExited: the child terminated on its own.
	StateExited
	// StateAborted: the caller canceled before the child terminated.
	StateAborted
	// StateClosed: every handle is released and every activity has finished.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateAborted:
		return "aborted"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// coordinator owns one invocation: the child handle, the fault list and the
// state machine. Only the coordinator closes pipe handles, except for the
// forwarder's end-of-input close, which goes through the same once-guarded
// closer.
type coordinator struct {
	child          *Child
	log            *slog.Logger
	chunkSize      int
	drainTimeout   time.Duration
	terminateGrace time.Duration

	state atomic.Int32

	// sinkFailed carries streams whose sink failed; each relay sends at most
	// once, so a buffer of two never blocks.
	sinkFailed chan Stream

	mu     sync.Mutex
	faults []error
}

// Supervise launches the child described by spec and supervises it until it
// exits or ctx is canceled, whichever comes first.
//
// It returns an error only when the child cannot be launched; that error
// wraps ErrLaunchFailed and no forwarder or relay has started. Otherwise it
// returns Completed with the child's exit code when the child exited first,
// or Aborted when ctx was canceled first, in which case the child has been
// killed and reaped. On both paths every pipe handle is closed and every
// activity has finished before Supervise returns. Canceling ctx after the
// child exited has no effect on the outcome.
func Supervise(ctx context.Context, spec Spec) (Outcome, error) {
	spec = spec.withDefaults()
	child, err := Launch(spec)
	if err != nil {
		return Outcome{}, err
	}

	co := &coordinator{
		child:          child,
		log:            spec.Logger.With("process", spec.Path, "pid", child.PID()),
		chunkSize:      spec.ChunkSize,
		drainTimeout:   spec.DrainTimeout,
		terminateGrace: spec.TerminateGrace,
		sinkFailed:     make(chan Stream, 2),
	}
	return co.run(ctx, spec), nil
}

func (co *coordinator) run(ctx context.Context, spec Spec) Outcome {
	// combined fires on external cancel or on child exit; the forwarder
	// watches it. abortCtx fires only when the coordinator decides to tear
	// the relays down; the relays watch it.
	combined, cancelCombined := context.WithCancelCause(ctx)
	defer cancelCombined(nil)
	abortCtx, abort := context.WithCancel(context.Background())
	defer abort()

	// The barrier: activities never return errors, faults are recorded on
	// the coordinator instead.
	var g errgroup.Group
	g.Go(func() error {
		co.forwardInput(combined, spec.Stdin)
		return nil
	})
	if spec.Stdout != nil {
		g.Go(func() error {
			co.relayOutput(abortCtx, Stdout, spec.Stdout)
			return nil
		})
	}
	if spec.Stderr != nil {
		g.Go(func() error {
			co.relayOutput(abortCtx, Stderr, spec.Stderr)
			return nil
		})
	}
	barrier := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(barrier)
	}()

	var out Outcome
	if co.await(ctx) == StateExited {
		out = co.finishExited(cancelCombined, abort, barrier)
	} else {
		out = co.finishAborted(ctx, cancelCombined, abort, barrier)
	}

	co.child.closeAll()
	co.setState(StateClosed)

	out.PID = co.child.PID()
	out.Faults = co.takeFaults()
	co.log.Debug("process supervision finished", "outcome", out.String(), "faults", len(out.Faults))
	return out
}

// await blocks in Running until the child exits or ctx is canceled, and
// returns the state it transitioned to. A cancellation that races with a
// natural exit resolves to Exited.
func (co *coordinator) await(ctx context.Context) State {
	for {
		select {
		case <-co.child.Exited():
			co.setState(StateExited)
			return StateExited
		case <-ctx.Done():
			if co.child.HasExited() {
				co.setState(StateExited)
				return StateExited
			}
			co.setState(StateAborted)
			return StateAborted
		case s := <-co.sinkFailed:
			co.log.Debug("closing channel after sink failure", "stream", s)
			co.child.closeStream(s)
		}
	}
}

// finishExited harvests the exit code and waits for the relays to drain. If
// a descendant keeps a pipe open past drainTimeout, the pipes are closed here.
func (co *coordinator) finishExited(
	cancelCombined context.CancelCauseFunc,
	abort context.CancelFunc,
	barrier <-chan struct{},
) Outcome {
	cancelCombined(errChildExited)
	out := Completed(co.child.ExitCode())
	if err := co.child.waitFailure(); err != nil {
		co.log.Warn("process exit status unavailable", "error", err)
		co.appendFault(err)
	}
	co.log.Debug("process exited", "exit_code", out.ExitCode)

	timer := time.NewTimer(co.drainTimeout)
	defer timer.Stop()
	for {
		select {
		case <-barrier:
			return out
		case s := <-co.sinkFailed:
			co.child.closeStream(s)
		case <-timer.C:
			co.log.Warn("channels still open after process exit; closing them",
				"drain_timeout", co.drainTimeout)
			abort()
			co.child.closeAll()
			<-barrier
			return out
		}
	}
}

// finishAborted closes the output handles so the relays unblock, terminates
// the child and waits for it to be reaped and for every activity to finish.
func (co *coordinator) finishAborted(
	ctx context.Context,
	cancelCombined context.CancelCauseFunc,
	abort context.CancelFunc,
	barrier <-chan struct{},
) Outcome {
	cancelCombined(context.Cause(ctx))
	co.log.Debug("process supervision canceled", "cause", context.Cause(ctx))

	abort()
	co.child.closeOutputs()
	if err := co.child.terminate(co.terminateGrace); err != nil {
		co.log.Warn("terminate process", "error", err)
	}
	// A descendant may still hold the read end of stdin; closing ours
	// unblocks a forwarder stuck in a write.
	co.child.closeStream(Stdin)
	<-barrier
	return Aborted()
}

func (co *coordinator) setState(s State) {
	co.state.Store(int32(s))
}

func (co *coordinator) currentState() State {
	return State(co.state.Load())
}

// channelFault records a failure on one of the child's pipes. End of stream,
// closed handles and broken pipes are how channels normally end.
func (co *coordinator) channelFault(s Stream, op string, err error) {
	co.record(&ChannelFault{Stream: s, Op: op, Err: err}, isShutdownErr(err))
}

// callerFault records a failure on the caller's source or sink.
func (co *coordinator) callerFault(s Stream, op string, err error) {
	co.record(&ChannelFault{Stream: s, Op: op, Err: err}, false)
}

// record logs f. Faults seen after exit or cancellation, or flagged as
// expected, are shutdown noise; the rest are kept for the Outcome.
func (co *coordinator) record(f *ChannelFault, expected bool) {
	if expected || co.currentState() != StateRunning {
		co.log.Debug("channel closed", "stream", f.Stream, "op", f.Op, "reason", f.Err)
		return
	}
	co.log.Warn("channel fault while process running", "stream", f.Stream, "op", f.Op, "error", f.Err)
	co.appendFault(f)
}

func (co *coordinator) appendFault(err error) {
	co.mu.Lock()
	co.faults = append(co.faults, err)
	co.mu.Unlock()
}

func (co *coordinator) takeFaults() []error {
	co.mu.Lock()
	defer co.mu.Unlock()
	faults := co.faults
	co.faults = nil
	return faults
}
