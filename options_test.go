package procrelay_test

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/giantswarm/procrelay"
)

// panicTestCase defines a test case for option validation panic tests.
type panicTestCase struct {
	name     string
	panics   bool
	panicMsg string
	fn       func()
}

// requirePanics calls fn and verifies it panics (or not) with the expected message.
func requirePanics(t *testing.T, shouldPanic bool, wantMsg string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if shouldPanic && r == nil {
			t.Fatal("expected panic but didn't get one")
		}
		if !shouldPanic && r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
		if shouldPanic && r != nil {
			msg := fmt.Sprint(r)
			if msg != wantMsg {
				t.Fatalf("expected panic message %q, got %q", wantMsg, msg)
			}
		}
	}()
	fn()
}

// runPanicTests runs a slice of panic test cases using requirePanics.
func runPanicTests(t *testing.T, tests []panicTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requirePanics(t, tt.panics, tt.panicMsg, tt.fn)
		})
	}
}

func TestWithChunkSizePanicsOnInvalid(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "zero",
			panics:   true,
			panicMsg: "procrelay: chunk size must be greater than 0, got 0",
			fn:       func() { procrelay.WithChunkSize(0) },
		},
		{
			name:     "negative",
			panics:   true,
			panicMsg: "procrelay: chunk size must be greater than 0, got -4",
			fn:       func() { procrelay.WithChunkSize(-4) },
		},
		{name: "one", fn: func() { procrelay.WithChunkSize(1) }},
	})
}

func TestWithDrainTimeoutPanicsOnInvalid(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "zero",
			panics:   true,
			panicMsg: "procrelay: drain timeout must be greater than 0, got 0s",
			fn:       func() { procrelay.WithDrainTimeout(0) },
		},
		{
			name:     "negative",
			panics:   true,
			panicMsg: "procrelay: drain timeout must be greater than 0, got -1s",
			fn:       func() { procrelay.WithDrainTimeout(-1 * time.Second) },
		},
		{name: "valid", fn: func() { procrelay.WithDrainTimeout(time.Millisecond) }},
	})
}

func TestWithTerminateGracePanicsOnNegative(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "negative",
			panics:   true,
			panicMsg: "procrelay: terminate grace must not be negative, got -1ms",
			fn:       func() { procrelay.WithTerminateGrace(-time.Millisecond) },
		},
		{name: "zero", fn: func() { procrelay.WithTerminateGrace(0) }},
		{name: "positive", fn: func() { procrelay.WithTerminateGrace(time.Second) }},
	})
}

func TestWithLoggerPanicsOnNil(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "nil",
			panics:   true,
			panicMsg: "procrelay: logger must not be nil",
			fn:       func() { procrelay.WithLogger(nil) },
		},
		{name: "default", fn: func() { procrelay.WithLogger(slog.Default()) }},
	})
}

func TestOptionApplicationDefaults(t *testing.T) {
	t.Parallel()

	snap := procrelay.ApplyOptionsForTesting()

	if snap.ChunkSize != procrelay.DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", snap.ChunkSize, procrelay.DefaultChunkSize)
	}
	if snap.DrainTimeout != procrelay.DefaultDrainTimeout {
		t.Errorf("DrainTimeout = %v, want %v", snap.DrainTimeout, procrelay.DefaultDrainTimeout)
	}
	if snap.TerminateGrace != procrelay.DefaultTerminateGrace {
		t.Errorf("TerminateGrace = %v, want %v", snap.TerminateGrace, procrelay.DefaultTerminateGrace)
	}
	if snap.HasLogger {
		t.Error("HasLogger = true, want false (package logger used)")
	}
}

func TestOptionApplicationOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opt    procrelay.Option
		verify func(t *testing.T, snap procrelay.ConfigSnapshot)
	}{
		{
			name: "WithChunkSize",
			opt:  procrelay.WithChunkSize(64),
			verify: func(t *testing.T, snap procrelay.ConfigSnapshot) {
				t.Helper()
				if snap.ChunkSize != 64 {
					t.Errorf("ChunkSize = %d, want 64", snap.ChunkSize)
				}
			},
		},
		{
			name: "WithDrainTimeout",
			opt:  procrelay.WithDrainTimeout(250 * time.Millisecond),
			verify: func(t *testing.T, snap procrelay.ConfigSnapshot) {
				t.Helper()
				if snap.DrainTimeout != 250*time.Millisecond {
					t.Errorf("DrainTimeout = %v, want 250ms", snap.DrainTimeout)
				}
			},
		},
		{
			name: "WithTerminateGrace",
			opt:  procrelay.WithTerminateGrace(2 * time.Second),
			verify: func(t *testing.T, snap procrelay.ConfigSnapshot) {
				t.Helper()
				if snap.TerminateGrace != 2*time.Second {
					t.Errorf("TerminateGrace = %v, want 2s", snap.TerminateGrace)
				}
			},
		},
		{
			name: "WithLogger",
			opt:  procrelay.WithLogger(slog.Default()),
			verify: func(t *testing.T, snap procrelay.ConfigSnapshot) {
				t.Helper()
				if !snap.HasLogger {
					t.Error("HasLogger = false, want true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.verify(t, procrelay.ApplyOptionsForTesting(tt.opt))
		})
	}
}

func TestOptionLastWins(t *testing.T) {
	t.Parallel()

	snap := procrelay.ApplyOptionsForTesting(
		procrelay.WithChunkSize(8),
		procrelay.WithChunkSize(16),
	)
	if snap.ChunkSize != 16 {
		t.Errorf("ChunkSize = %d, want 16", snap.ChunkSize)
	}
}
