package cart

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Reconciler periodically refetches the cart so optimistic local state
// converges with the backend
type Reconciler struct {
	syncer   *Syncer
	interval time.Duration
	logger   *zap.Logger
}

// NewReconciler creates a reconciler. An interval of zero disables it.
func NewReconciler(syncer *Syncer, interval time.Duration, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		syncer:   syncer,
		interval: interval,
		logger:   logger,
	}
}

// Run refetches on every tick until ctx is done. Fetch failures are logged
// and the loop keeps going.
func (r *Reconciler) Run(ctx context.Context) error {
	if r.interval <= 0 {
		r.logger.Info("Cart reconciler disabled")
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Cart reconciler started", zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Cart reconciler stopping")
			return nil
		case <-ticker.C:
			items, err := r.syncer.FetchCart(ctx)
			if err != nil {
				r.logger.Warn("Cart reconcile failed", zap.Error(err))
				continue
			}
			r.logger.Debug("Cart reconciled", zap.Int("items", len(items)))
		}
	}
}
