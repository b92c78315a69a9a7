package procrelay

import (
	"log/slog"

	"github.com/giantswarm/procrelay/internal/core"
)

// SetLogger replaces the package-level logger used by procrelay.
// This allows applications to integrate procrelay logging with their own
// logging infrastructure. The provided logger should already have any
// desired attributes; procrelay adds only per-invocation attributes
// ("process", "pid", "stream").
//
// If l is nil, the logger resets to the default: slog.Default() with a
// "component" attribute, re-derived on the next use and then cached. Call
// SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// SetLogger is safe to call concurrently with Run. A Run that is already in
// progress keeps the logger it started with. WithLogger overrides the
// package-level logger for a single invocation.
//
// Example:
//
//	procrelay.SetLogger(myLogger.With("component", "procrelay"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
