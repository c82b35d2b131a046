package worker

import (
	"context"
	"sync"
	"time"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

// SnapshotRefresher periodically re-aggregates every player's holdings.
// Overlapping runs are skipped.
type SnapshotRefresher struct {
	enabled  bool
	interval time.Duration
	useCase  portsin.RefreshOwnedAssetSnapshotsUseCase
	logger   *log.Logger

	mu        sync.Mutex
	scheduler *gocron.Scheduler
}

func NewSnapshotRefresher(
	enabled bool,
	interval time.Duration,
	useCase portsin.RefreshOwnedAssetSnapshotsUseCase,
	logger *log.Logger,
) *SnapshotRefresher {
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &SnapshotRefresher{
		enabled:  enabled,
		interval: interval,
		useCase:  useCase,
		logger:   logger,
	}
}

func (w *SnapshotRefresher) Enabled() bool {
	return w != nil && w.enabled
}

// Start schedules refresh runs and blocks until ctx is done.
func (w *SnapshotRefresher) Start(ctx context.Context) error {
	if w == nil || !w.enabled || w.useCase == nil {
		return nil
	}

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()
	if _, err := scheduler.Every(w.interval).Do(func() {
		w.RunOnce(ctx)
	}); err != nil {
		return err
	}

	w.mu.Lock()
	w.scheduler = scheduler
	w.mu.Unlock()

	w.logger.WithField("interval", w.interval.String()).Info("owned asset snapshot refresher started")
	scheduler.StartAsync()

	<-ctx.Done()
	scheduler.Stop()
	w.logger.Info("owned asset snapshot refresher stopped")
	return nil
}

func (w *SnapshotRefresher) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	startedAt := time.Now().UTC()
	output, appErr := w.useCase.Execute(ctx, dto.RefreshOwnedAssetSnapshotsCommand{Now: startedAt})
	if appErr != nil {
		w.logger.WithFields(log.Fields{
			"code":    appErr.Code,
			"details": appErr.Details,
		}).Error(appErr.Message)
		return
	}

	w.logger.WithFields(log.Fields{
		"run_id":     output.RunID,
		"accounts":   output.Accounts,
		"refreshed":  output.Refreshed,
		"failed":     output.Failed,
		"assets":     output.Assets,
		"latency_ms": time.Since(startedAt).Milliseconds(),
	}).Info("owned asset snapshot refresh completed")
}
