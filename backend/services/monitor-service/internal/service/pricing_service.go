package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/billing"
	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/repository"
	"powermonitor/backend/services/monitor-service/internal/store"
)

// PricingService guards the active pricing schedule: every replacement goes
// through validation, then persistence, then the in-memory swap.
type PricingService struct {
	store  store.SlabStore
	repo   ScheduleRepository
	logger *zap.Logger

	// serializes updates so the persisted and active schedules cannot diverge
	updateMu sync.Mutex
}

// NewPricingService builds service. repo may be nil.
func NewPricingService(slabs store.SlabStore, repo ScheduleRepository, logger *zap.Logger) *PricingService {
	return &PricingService{
		store:  slabs,
		repo:   repo,
		logger: logger,
	}
}

// Current returns the active schedule.
func (s *PricingService) Current() models.PricingSchedule {
	return s.store.Current()
}

// Update validates and installs a new schedule. A rejected or unpersisted
// candidate leaves the active schedule untouched.
func (s *PricingService) Update(ctx context.Context, candidate []models.PricingSlab) (models.PricingSchedule, error) {
	schedule, err := billing.ValidateSchedule(candidate)
	if err != nil {
		pricingUpdatesTotal.WithLabelValues("rejected").Inc()
		s.logger.Info("pricing schedule rejected", zap.Error(err))
		return nil, err
	}

	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	if s.repo != nil {
		if err := s.repo.Save(ctx, schedule); err != nil {
			pricingUpdatesTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("persist pricing schedule: %w", err)
		}
	}
	s.store.Replace(schedule)
	pricingUpdatesTotal.WithLabelValues("accepted").Inc()

	s.logger.Info("pricing schedule updated", zap.Int("slabs", len(schedule)))
	return schedule.Clone(), nil
}

// Restore activates the last persisted schedule, if there is one. A stored
// schedule that no longer validates is ignored.
func (s *PricingService) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	stored, err := s.repo.LoadLatest(ctx)
	if errors.Is(err, repository.ErrNoSchedule) {
		s.logger.Info("no stored pricing schedule, keeping configured default")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore pricing schedule: %w", err)
	}

	schedule, err := billing.ValidateSchedule(stored)
	if err != nil {
		s.logger.Warn("stored pricing schedule is invalid, keeping configured default", zap.Error(err))
		return nil
	}

	s.updateMu.Lock()
	s.store.Replace(schedule)
	s.updateMu.Unlock()

	s.logger.Info("pricing schedule restored", zap.Int("slabs", len(schedule)))
	return nil
}
