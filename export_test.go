package procrelay

import "time"

// ConfigSnapshot holds a copy of runConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	ChunkSize      int
	DrainTimeout   time.Duration
	TerminateGrace time.Duration
	HasLogger      bool
}

// ApplyOptionsForTesting creates a default runConfig, applies the given
// options, and returns a ConfigSnapshot of the result.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		ChunkSize:      cfg.ChunkSize,
		DrainTimeout:   cfg.DrainTimeout,
		TerminateGrace: cfg.TerminateGrace,
		HasLogger:      cfg.Logger != nil,
	}
}
