package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/store"
)

// Ingestion sources used for metrics and logs.
const (
	SourceHTTP      = "http"
	SourceWebSocket = "websocket"
)

// ErrInvalidReading is returned for readings with non-finite or negative values.
var ErrInvalidReading = errors.New("invalid reading")

// ReadingInput is the payload a meter sends.
type ReadingInput struct {
	Voltage float64 `json:"voltage"`
	Current float64 `json:"current"`
	Power   float64 `json:"power"`
}

// ReadingsService ingests readings into the bounded history and mirrors them
// to the optional archive and cache.
type ReadingsService struct {
	store   store.ReadingStore
	archive ReadingArchive
	cache   LatestReadingCache
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewReadingsService builds service. archive and cache may be nil.
func NewReadingsService(readings store.ReadingStore, archive ReadingArchive, cache LatestReadingCache, logger *zap.Logger) *ReadingsService {
	return &ReadingsService{
		store:   readings,
		archive: archive,
		cache:   cache,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.NewString() },
	}
}

// Record assigns an id and timestamp to the input and stores it.
func (s *ReadingsService) Record(ctx context.Context, source string, input ReadingInput) (models.Reading, error) {
	if err := validateInput(input); err != nil {
		return models.Reading{}, err
	}

	reading := models.Reading{
		ID:        s.newID(),
		Voltage:   input.Voltage,
		Current:   input.Current,
		Power:     input.Power,
		Timestamp: s.now(),
	}
	s.store.Append(reading)
	readingsIngestedTotal.WithLabelValues(source).Inc()
	lastPowerKW.Set(reading.Power)

	if s.archive != nil {
		if err := s.archive.Insert(ctx, reading); err != nil {
			s.logger.Warn("failed to archive reading", zap.String("reading_id", reading.ID), zap.Error(err))
		}
	}
	if s.cache != nil {
		if err := s.cache.Save(ctx, reading); err != nil {
			s.logger.Warn("failed to cache latest reading", zap.Error(err))
		}
	}

	s.logger.Debug("reading recorded",
		zap.String("reading_id", reading.ID),
		zap.String("source", source),
		zap.Float64("power_kw", reading.Power),
	)
	return reading, nil
}

// Latest returns the newest retained reading. The shared cache is only
// published to, so every endpoint answers from the same history.
func (s *ReadingsService) Latest() (models.Reading, bool) {
	return s.store.Latest()
}

// Recent returns up to limit newest readings, oldest first. Limits outside
// (0, capacity] are clamped to the store capacity.
func (s *ReadingsService) Recent(limit int) []models.Reading {
	if limit <= 0 || limit > s.store.Capacity() {
		limit = s.store.Capacity()
	}
	return s.store.Recent(limit)
}

// Warm refills the in-memory history from the archive after a restart.
func (s *ReadingsService) Warm(ctx context.Context) error {
	if s.archive == nil {
		return nil
	}
	readings, err := s.archive.ListRecent(ctx, s.store.Capacity())
	if err != nil {
		return fmt.Errorf("warm readings: %w", err)
	}
	for _, r := range readings {
		s.store.Append(r)
	}
	s.logger.Info("reading history restored", zap.Int("count", len(readings)))
	return nil
}

func validateInput(input ReadingInput) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"voltage", input.Voltage},
		{"current", input.Current},
		{"power", input.Power},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidReading, f.name)
		}
	}
	if input.Power < 0 {
		return fmt.Errorf("%w: power must not be negative", ErrInvalidReading)
	}
	return nil
}
