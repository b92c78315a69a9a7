package procrelay

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/giantswarm/procrelay/internal/core"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("procrelay: %s must be greater than 0, got %v", name, v))
	}
}

// runConfig wraps core.RunConfig via embedding, keeping internal/core types
// out of the public API signature.
type runConfig struct {
	core.RunConfig
}

func defaultRunConfig() runConfig {
	return runConfig{RunConfig: core.DefaultRunConfig()}
}

// Option configures a single Run invocation.
// Each With* function returns an Option that sets a specific field.
//
// With* functions panic on invalid input. Option values are typically
// constants, so an invalid value is a programmer error; the pattern mirrors
// [regexp.MustCompile].
type Option func(*runConfig)

// WithChunkSize sets the size, in bytes, of the buffer each output relay
// reads into. Smaller chunks deliver output to the sinks with lower latency;
// larger chunks make fewer system calls.
//
// Default: 1024.
//
// Panics if n <= 0.
func WithChunkSize(n int) Option {
	requirePositive("chunk size", n)
	return func(c *runConfig) {
		c.ChunkSize = n
	}
}

// WithDrainTimeout sets how long Run keeps relaying output after the child
// exited on its own. Relays normally reach end of stream immediately; they
// only outlive the child when a process it spawned inherited the output
// pipe. When the timeout expires the pipes are closed and the outcome is
// still Completed.
//
// Default: 10 seconds.
//
// Panics if d <= 0.
func WithDrainTimeout(d time.Duration) Option {
	requirePositive("drain timeout", d)
	return func(c *runConfig) {
		c.DrainTimeout = d
	}
}

// WithTerminateGrace makes an aborted Run send SIGTERM first and SIGKILL
// only if the child is still running after d. On platforms without SIGTERM
// the child is killed at once regardless.
//
// Default: 0 (kill immediately).
//
// Panics if d < 0.
func WithTerminateGrace(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("procrelay: terminate grace must not be negative, got %v", d))
	}
	return func(c *runConfig) {
		c.TerminateGrace = d
	}
}

// WithLogger sets the logger for a single invocation, overriding the
// package-level logger configured with SetLogger.
//
// Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("procrelay: logger must not be nil")
	}
	return func(c *runConfig) {
		c.Logger = l
	}
}
