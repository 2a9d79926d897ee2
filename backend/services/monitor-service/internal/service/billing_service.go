package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/billing"
	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/store"
)

// BillingService prices consumption recorded in the reading history against
// the active pricing schedule.
type BillingService struct {
	readings store.ReadingStore
	slabs    store.SlabStore
	tracer   trace.Tracer
	logger   *zap.Logger
}

// Summary describes consumption over the whole retained history.
type Summary struct {
	Bill        models.BillingResult
	Latest      *models.Reading
	CostPerHour float64
}

// RealtimeEstimate is the hourly cost of the latest reading's power draw.
type RealtimeEstimate struct {
	Reading     models.Reading
	CostPerHour float64
}

// ErrNoReadings is returned when an estimate needs a reading and none exists.
var ErrNoReadings = errors.New("no readings recorded")

// NewBillingService builds service.
func NewBillingService(readings store.ReadingStore, slabs store.SlabStore, tracer trace.Tracer, logger *zap.Logger) *BillingService {
	return &BillingService{
		readings: readings,
		slabs:    slabs,
		tracer:   tracer,
		logger:   logger,
	}
}

// CalculateCost integrates the readings inside [start, end] and bills the
// resulting energy.
func (s *BillingService) CalculateCost(ctx context.Context, start, end time.Time) (models.BillingResult, error) {
	_, span := s.tracer.Start(ctx, "billing.CalculateCost", trace.WithAttributes(
		attribute.String("window.start", start.UTC().Format(time.RFC3339)),
		attribute.String("window.end", end.UTC().Format(time.RFC3339)),
	))
	defer span.End()

	if end.Before(start) {
		costCalculationsTotal.WithLabelValues("invalid_range").Inc()
		err := fmt.Errorf("%w: end %s is before start %s", billing.ErrInvalidRange,
			end.UTC().Format(time.RFC3339), start.UTC().Format(time.RFC3339))
		span.SetStatus(codes.Error, err.Error())
		return models.BillingResult{}, err
	}

	window := s.readings.Query(start, end)
	result, err := s.bill(window, s.slabs.Current())
	if err != nil {
		costCalculationsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("cost calculation failed", zap.Error(err))
		return models.BillingResult{}, err
	}

	costCalculationsTotal.WithLabelValues("ok").Inc()
	billedEnergyKWh.Observe(result.TotalEnergy)
	span.SetAttributes(
		attribute.Int("readings.count", result.ReadingsCount),
		attribute.Float64("energy.kwh", result.TotalEnergy),
		attribute.Float64("cost.total", result.TotalCost),
	)
	s.logger.Debug("cost calculated",
		zap.Int("readings", result.ReadingsCount),
		zap.Float64("energy_kwh", result.TotalEnergy),
		zap.Float64("cost", result.TotalCost),
	)
	return result, nil
}

// Summarize bills everything currently retained, as shown on the dashboard.
func (s *BillingService) Summarize(ctx context.Context) (Summary, error) {
	_, span := s.tracer.Start(ctx, "billing.Summarize")
	defer span.End()

	history := s.readings.Recent(0)
	schedule := s.slabs.Current()
	result, err := s.bill(history, schedule)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}

	summary := Summary{Bill: result}
	if len(history) > 0 {
		latest := history[len(history)-1]
		summary.Latest = &latest
		if summary.CostPerHour, err = billing.HourlyCostEstimate(latest.Power, schedule); err != nil {
			return Summary{}, err
		}
	}
	return summary, nil
}

// Realtime estimates the hourly cost of the latest reading.
func (s *BillingService) Realtime(ctx context.Context) (RealtimeEstimate, error) {
	latest, ok := s.readings.Latest()
	if !ok {
		return RealtimeEstimate{}, ErrNoReadings
	}
	cost, err := billing.HourlyCostEstimate(latest.Power, s.slabs.Current())
	if err != nil {
		return RealtimeEstimate{}, err
	}
	return RealtimeEstimate{Reading: latest, CostPerHour: cost}, nil
}

func (s *BillingService) bill(readings []models.Reading, schedule models.PricingSchedule) (models.BillingResult, error) {
	energy := billing.Integrate(readings)
	result, err := billing.Bill(energy, schedule)
	if err != nil {
		return models.BillingResult{}, err
	}
	result.ReadingsCount = len(readings)
	return result, nil
}
