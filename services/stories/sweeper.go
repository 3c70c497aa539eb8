package stories

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// SweepStats summarizes one expiration sweep run.
type SweepStats struct {
	Expired         int // stories found past their lifetime
	Reclaimed       int // records actually removed
	CleanupFailures int // media deletions that failed (non-fatal)
	RemoveFailures  int // record removals that failed (story left for next run)
}

// Sweeper periodically reclaims expired stories: best-effort media
// deletion first, then record removal through the same store contract
// the request paths use.
type Sweeper struct {
	store    *Store
	interval time.Duration
}

// NewSweeper creates a sweeper over the given store. interval is the
// sweep period; non-positive values fall back to one hour.
func NewSweeper(store *Store, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{store: store, interval: interval}
}

// Run sweeps immediately, then on every tick until ctx is cancelled.
func (w *Sweeper) Run(ctx context.Context) {
	logrus.WithField("interval", w.interval).Info("Expiration sweeper started")

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Expiration sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Sweeper) sweep(ctx context.Context) {
	stats, err := w.SweepOnce(ctx, time.Now().UTC())
	if err != nil {
		logrus.WithError(err).Error("Expiration sweep failed")
		return
	}
	if stats.Expired > 0 || stats.CleanupFailures > 0 {
		logrus.WithFields(logrus.Fields{
			"expired":          stats.Expired,
			"reclaimed":        stats.Reclaimed,
			"cleanup_failures": stats.CleanupFailures,
			"remove_failures":  stats.RemoveFailures,
		}).Info("Expiration sweep finished")
	}
}

// SweepOnce reclaims every story expired at now. A failed media deletion
// is logged and counted but never stops the record removal; a failed
// record removal skips only that story. The batch always runs to the end.
func (w *Sweeper) SweepOnce(ctx context.Context, now time.Time) (SweepStats, error) {
	started := time.Now()

	expired, err := w.store.ListExpired(ctx, now)
	if err != nil {
		return SweepStats{}, err
	}

	stats := SweepStats{Expired: len(expired)}
	for i := range expired {
		st := &expired[i]

		if err := w.store.media.Delete(ctx, st.MediaRef); err != nil {
			stats.CleanupFailures++
			sweepCleanupFailures.Inc()
			logrus.WithFields(logrus.Fields{"story_id": st.ID, "media_ref": st.MediaRef}).
				WithError(err).Warn("Failed to delete expired story media")
		}

		if err := w.store.Remove(ctx, st.ID); err != nil {
			stats.RemoveFailures++
			logrus.WithField("story_id", st.ID).
				WithError(err).Error("Failed to remove expired story")
			continue
		}
		stats.Reclaimed++
		sweepReclaimed.Inc()
	}

	sweepRuns.Inc()
	sweepDuration.Observe(time.Since(started).Seconds())
	return stats, nil
}
