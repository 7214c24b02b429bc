package service

import (
	"context"
	"time"

	"github.com/restodesk/pos-api/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

const workerBatchSize = 20

// SubmissionWorker periodically re-dispatches pending submissions whose
// first delivery failed. Together with the durable records it guarantees
// that every finalized sale eventually reaches the backend or surfaces as a
// dead submission for manual review.
type SubmissionWorker struct {
	subRepo  repository.PendingSubmissionRepository
	checkout *CheckoutService
	interval time.Duration
	logger   *logrus.Logger
}

// NewSubmissionWorker creates a new submission worker
func NewSubmissionWorker(
	subRepo repository.PendingSubmissionRepository,
	checkout *CheckoutService,
	interval time.Duration,
	logger *logrus.Logger,
) *SubmissionWorker {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &SubmissionWorker{
		subRepo:  subRepo,
		checkout: checkout,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the worker loop until ctx is cancelled
func (w *SubmissionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.WithField("interval", w.interval.String()).Info("submission worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("submission worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SubmissionWorker) runOnce(ctx context.Context) {
	records, err := w.subRepo.Due(ctx, time.Now(), workerBatchSize)
	if err != nil {
		w.logger.WithError(err).Error("failed to load due submissions")
		return
	}
	for i := range records {
		if ctx.Err() != nil {
			return
		}
		w.checkout.Dispatch(ctx, &records[i])
	}
}
