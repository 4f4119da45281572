// Package simulate stands in for backend calls that do not exist yet.
package simulate

import (
	"context"
	"time"
)

// Remote waits d and reports success. The only way it fails is ctx ending
// first; there is no failed or retry state.
func Remote(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
