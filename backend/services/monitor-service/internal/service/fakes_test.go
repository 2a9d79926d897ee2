package service

import (
	"context"
	"sync"

	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/repository"
)

type fakeArchive struct {
	mu        sync.Mutex
	inserted  []models.Reading
	stored    []models.Reading
	insertErr error
	listErr   error
	lastLimit int
}

func (f *fakeArchive) Insert(ctx context.Context, reading models.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, reading)
	return nil
}

func (f *fakeArchive) ListRecent(ctx context.Context, limit int) ([]models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Reading(nil), f.stored...), nil
}

type fakeCache struct {
	mu      sync.Mutex
	reading *models.Reading
	saveErr error
}

func (f *fakeCache) Save(ctx context.Context, reading models.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.reading = &reading
	return nil
}

type fakeScheduleRepo struct {
	mu      sync.Mutex
	saved   []models.PricingSchedule
	latest  models.PricingSchedule
	saveErr error
	loadErr error
}

func (f *fakeScheduleRepo) Save(ctx context.Context, schedule models.PricingSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, schedule.Clone())
	f.latest = schedule.Clone()
	return nil
}

func (f *fakeScheduleRepo) LoadLatest(ctx context.Context) (models.PricingSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.latest == nil {
		return nil, repository.ErrNoSchedule
	}
	return f.latest.Clone(), nil
}
