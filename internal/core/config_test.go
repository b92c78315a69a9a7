package core

import (
	"strings"
	"testing"
	"time"
)

func TestRunConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("default config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := DefaultRunConfig().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := map[string]struct {
		modify       func(c *RunConfig)
		wantContains string
	}{
		"zero chunk size": {
			modify:       func(c *RunConfig) { c.ChunkSize = 0 },
			wantContains: "chunk size",
		},
		"negative chunk size": {
			modify:       func(c *RunConfig) { c.ChunkSize = -4 },
			wantContains: "chunk size",
		},
		"zero drain timeout": {
			modify:       func(c *RunConfig) { c.DrainTimeout = 0 },
			wantContains: "drain timeout",
		},
		"negative terminate grace": {
			modify:       func(c *RunConfig) { c.TerminateGrace = -time.Second },
			wantContains: "terminate grace",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultRunConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantContains)
			}
		})
	}

	t.Run("reports every violation", func(t *testing.T) {
		t.Parallel()
		err := RunConfig{TerminateGrace: -1}.Validate()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		for _, want := range []string{"chunk size", "drain timeout", "terminate grace"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %q", err.Error(), want)
			}
		}
	})

	t.Run("zero grace is valid", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultRunConfig()
		cfg.TerminateGrace = 0
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
