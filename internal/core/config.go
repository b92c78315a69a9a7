package core

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/giantswarm/procrelay/internal/process"
)

// RunConfig holds the tuning knobs of one supervised invocation.
//
// All fields are read once by Run; a RunConfig can be shared between
// concurrent invocations.
type RunConfig struct {
	// ChunkSize is the relay buffer size in bytes. Each relay keeps at most
	// one chunk in flight. Default: process.DefaultChunkSize.
	ChunkSize int

	// DrainTimeout bounds how long output relays may keep running after the
	// child exited on its own. Default: process.DefaultDrainTimeout.
	DrainTimeout time.Duration

	// TerminateGrace is the time an aborted child gets between SIGTERM and
	// SIGKILL. Zero kills immediately.
	TerminateGrace time.Duration

	// Logger overrides the package-level logger for this invocation.
	Logger *slog.Logger
}

// DefaultRunConfig returns the configuration Run uses when no option is given.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		ChunkSize:    process.DefaultChunkSize,
		DrainTimeout: process.DefaultDrainTimeout,
	}
}

// Validate checks all RunConfig invariants and returns an error describing
// every violation found, joined with errors.Join.
func (c RunConfig) Validate() error {
	var errs []error

	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be greater than 0, got %d", c.ChunkSize))
	}
	if c.DrainTimeout <= 0 {
		errs = append(errs, fmt.Errorf("drain timeout must be greater than 0, got %s", c.DrainTimeout))
	}
	if c.TerminateGrace < 0 {
		errs = append(errs, fmt.Errorf("terminate grace must not be negative, got %s", c.TerminateGrace))
	}

	return errors.Join(errs...)
}
