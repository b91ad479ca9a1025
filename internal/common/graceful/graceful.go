package graceful

import (
	"context"
	"time"

	"golang.org/x/exp/slices"
)

type ProcessStopper func(ctx context.Context) error

// StopProcess runs the stoppers in reverse registration order, each with its
// own timeout.
func StopProcess(duration time.Duration, ps ...ProcessStopper) {
	slices.Reverse(ps)

	for _, p := range ps {
		func() {
			if p == nil {
				return
			}
			ctx, stop := context.WithTimeout(context.Background(), duration)
			defer stop()
			_ = p(ctx)
		}()
	}
}
