// Package worker runs the background sweep that deletes orphaned transaction
// documents. The create-then-reference sequence is not transactional, so a
// crash between the two steps can leave a document referenced by no user.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aljaz-ferenc/budget-app/logger"
)

// SweepFunc deletes orphaned transactions created before the cutoff and
// reports how many were removed.
type SweepFunc func(ctx context.Context, olderThan time.Time) (int64, error)

type Sweeper struct {
	Interval time.Duration
	// Grace keeps the sweep away from transactions whose reference push may
	// still be in flight.
	Grace time.Duration
	Sweep SweepFunc
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	logger.Get().Info("starting orphan sweeper",
		zap.Duration("interval", s.Interval),
		zap.Duration("grace", s.Grace))

	s.sweepOnce(ctx)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("stopping orphan sweeper")
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	deleted, err := s.Sweep(ctx, time.Now().Add(-s.Grace))
	if err != nil {
		logger.Get().Error("orphan sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.Get().Info("swept orphaned transactions", zap.Int64("deleted", deleted))
	}
}
