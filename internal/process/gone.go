package process

import (
	"context"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// WaitGone polls until pid is no longer present in the process table or the
// timeout elapses. After an Aborted outcome the child has already been
// reaped, so WaitGone normally returns on the first check; it exists for
// callers that want to confirm this, and for descendants the caller tracks
// by PID.
func WaitGone(ctx context.Context, pid int, interval, timeout time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("wait for pid %d to exit: %w", pid, ErrIntervalNotPositive)
	}
	if timeout <= 0 {
		return fmt.Errorf("wait for pid %d to exit: %w", pid, ErrTimeoutNotPositive)
	}

	if err := wait.PollUntilContextTimeout(ctx, interval, timeout, true,
		func(context.Context) (bool, error) {
			return !processExists(pid), nil
		}); err != nil {
		return fmt.Errorf("wait for pid %d to exit: %w", pid, err)
	}
	return nil
}
