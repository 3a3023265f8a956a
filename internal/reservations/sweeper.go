package reservations

import (
	"context"
	"sync/atomic"
	"time"

	"reserva/pkg/logger"
)

// Sweeper is the background task that reclaims inventory held by
// reservations whose payment window expired. One instance runs per
// process; each tick performs one bulk atomic transition.
type Sweeper struct {
	service  Service
	interval time.Duration
	log      *logger.Logger

	running atomic.Bool
	done    chan struct{}
}

// NewSweeper creates a new pending-expiry sweeper
func NewSweeper(service Service, interval time.Duration, log *logger.Logger) *Sweeper {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Sweeper{
		service:  service,
		interval: interval,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called or ctx is cancelled
func (sw *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	sw.log.InfoWithContext(ctx, "Pending expiry sweeper started", map[string]interface{}{
		"interval": sw.interval.String(),
	})

	for {
		select {
		case <-ticker.C:
			sw.sweep(ctx)
		case <-sw.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop terminates the sweep loop
func (sw *Sweeper) Stop() {
	close(sw.done)
}

// sweep runs one expiry pass. Overlapping ticks are skipped rather than
// queued; a skipped or failed run is made up on the next tick.
func (sw *Sweeper) sweep(ctx context.Context) {
	if !sw.running.CompareAndSwap(false, true) {
		return
	}
	defer sw.running.Store(false)

	start := time.Now()
	expired, err := sw.service.FailExpiredPending(ctx)
	if err != nil {
		// Contained: never propagates to request handlers, never crashes
		// the host process.
		sw.log.ErrorWithContext(ctx, "Expiry sweep failed", err, nil)
		return
	}

	if expired > 0 {
		sw.log.LogSweepCompleted(ctx, expired, time.Since(start))
	}
}
