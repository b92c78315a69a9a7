package runlock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"github.com/giantswarm/procrelay/internal/fileutil"
)

// RetryInterval is the interval between consecutive attempts to acquire a
// held lock.
const RetryInterval = 50 * time.Millisecond

// Lock is an acquired exclusive file lock. Release it with Release.
type Lock struct {
	fl  *flock.Flock
	log *slog.Logger
}

// Acquire takes an exclusive lock on path, creating the file and its parent
// directory if needed. It retries every RetryInterval until the lock is held
// or ctx is done.
func Acquire(ctx context.Context, log *slog.Logger, path string) (*Lock, error) {
	if err := fileutil.EnsureDirForFile(path); err != nil {
		return nil, fmt.Errorf("acquiring run lock %s: %w", path, err)
	}

	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, RetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock %s: %w", path, err)
	}
	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring run lock %s: %w", path, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring run lock %s: lock not acquired", path)
	}

	log.Debug("run lock acquired", "path", path)
	return &Lock{fl: fl, log: log}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release unlocks and closes the lock file. The file itself is left on disk;
// removing it could invalidate a lock another process acquired in between.
// Release is best-effort and safe to call on a nil Lock.
func (l *Lock) Release() {
	if l == nil || l.fl == nil {
		return
	}
	if err := l.fl.Close(); err != nil {
		l.log.Debug("failed to release run lock", "path", l.fl.Path(), "err", err)
	}
}
