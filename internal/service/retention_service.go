package service

import (
	"context"
	"time"

	"xlai-be/internal/pkg/logger"
	"xlai-be/internal/repository/unitofwork"
)

type IRetentionService interface {
	// Run blocks, sweeping on a fixed interval until ctx is cancelled.
	Run(ctx context.Context)

	// SweepOnce deletes all messages at or past the retention window.
	SweepOnce(ctx context.Context) (int64, error)

	// Cutoff returns the current expiry boundary; rows created at or before
	// it are expired.
	Cutoff() time.Time
}

type retentionService struct {
	uowFactory    unitofwork.RepositoryFactory
	window        time.Duration
	sweepInterval time.Duration
	logger        logger.ILogger
}

func NewRetentionService(
	uowFactory unitofwork.RepositoryFactory,
	windowHours int,
	sweepIntervalMinutes int,
	log logger.ILogger,
) IRetentionService {
	return &retentionService{
		uowFactory:    uowFactory,
		window:        time.Duration(windowHours) * time.Hour,
		sweepInterval: time.Duration(sweepIntervalMinutes) * time.Minute,
		logger:        log,
	}
}

func (s *retentionService) Cutoff() time.Time {
	return time.Now().Add(-s.window)
}

func (s *retentionService) SweepOnce(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.MessageRepository().DeleteOlderThan(ctx, s.Cutoff())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("Retention", "Sweep removed expired messages", map[string]interface{}{
			"deleted": deleted,
		})
	}
	return deleted, nil
}

func (s *retentionService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A failed sweep just means rows survive until the next tick.
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("Retention", "Sweep failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
