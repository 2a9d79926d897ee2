package service

import (
	"context"

	"powermonitor/backend/services/monitor-service/internal/models"
)

// ReadingArchive persists readings beyond the bounded in-memory history.
type ReadingArchive interface {
	Insert(ctx context.Context, reading models.Reading) error
	ListRecent(ctx context.Context, limit int) ([]models.Reading, error)
}

// LatestReadingCache publishes the newest reading to other processes.
type LatestReadingCache interface {
	Save(ctx context.Context, reading models.Reading) error
}

// ScheduleRepository persists accepted pricing schedules.
type ScheduleRepository interface {
	Save(ctx context.Context, schedule models.PricingSchedule) error
	LoadLatest(ctx context.Context) (models.PricingSchedule, error)
}
