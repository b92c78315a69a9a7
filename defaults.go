package procrelay

import (
	"time"

	"github.com/giantswarm/procrelay/internal/process"
)

// Default configuration values for Run.
const (
	// DefaultChunkSize is the size of the buffer each output relay reads
	// into. At most one chunk per stream is in flight at a time.
	DefaultChunkSize = process.DefaultChunkSize

	// DefaultDrainTimeout is how long Run keeps relaying after the child
	// exited on its own before closing output pipes that a descendant
	// process still holds open.
	DefaultDrainTimeout = process.DefaultDrainTimeout

	// DefaultTerminateGrace is the time an aborted child gets between
	// SIGTERM and SIGKILL. Zero means the child is killed at once.
	DefaultTerminateGrace time.Duration = 0

	// DefaultGonePollInterval is the poll interval used by WaitGone.
	DefaultGonePollInterval = 10 * time.Millisecond
)
