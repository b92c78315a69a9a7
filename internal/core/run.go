package core

import (
	"context"
	"fmt"

	"github.com/giantswarm/procrelay/internal/process"
)

// Run validates cfg, applies it to spec and supervises the child.
//
// An invalid cfg is reported as an error before anything is launched. Launch
// failures are returned unchanged so that errors.Is(err,
// process.ErrLaunchFailed) holds for callers.
func Run(ctx context.Context, spec process.Spec, cfg RunConfig) (process.Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return process.Outcome{}, fmt.Errorf("invalid run config: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = Logger()
	}
	spec.ChunkSize = cfg.ChunkSize
	spec.DrainTimeout = cfg.DrainTimeout
	spec.TerminateGrace = cfg.TerminateGrace
	spec.Logger = log

	out, err := process.Supervise(ctx, spec)
	if err != nil {
		log.Debug("process launch failed", "process", spec.Path, "error", err)
		return process.Outcome{}, err
	}
	if len(out.Faults) > 0 {
		log.Info("process finished with channel faults",
			"process", spec.Path, "outcome", out.String(), "faults", len(out.Faults))
	}
	return out, nil
}
