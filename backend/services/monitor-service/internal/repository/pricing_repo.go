package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"powermonitor/backend/services/monitor-service/internal/models"
)

// ErrNoSchedule is returned when no schedule has been persisted yet.
var ErrNoSchedule = errors.New("pricing: no stored schedule")

// PricingRepository keeps every accepted schedule; the newest one is active.
type PricingRepository struct {
	db *sql.DB
}

// NewPricingRepository returns repository.
func NewPricingRepository(db *sql.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// Save stores the schedule and its slabs in a single transaction.
func (r *PricingRepository) Save(ctx context.Context, schedule models.PricingSchedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pricing: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var scheduleID int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO pricing_schedules (created_at) VALUES (NOW()) RETURNING id`,
	).Scan(&scheduleID); err != nil {
		return fmt.Errorf("pricing: insert schedule: %w", err)
	}

	const insertSlab = `
		INSERT INTO pricing_slabs (schedule_id, position, min_units, max_units, price_per_unit)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, slab := range schedule {
		var maxUnits sql.NullFloat64
		if slab.MaxUnits != nil {
			maxUnits = sql.NullFloat64{Float64: *slab.MaxUnits, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertSlab, scheduleID, i, slab.MinUnits, maxUnits, slab.PricePerUnit); err != nil {
			return fmt.Errorf("pricing: insert slab %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pricing: commit: %w", err)
	}
	return nil
}

// LoadLatest returns the most recently saved schedule.
func (r *PricingRepository) LoadLatest(ctx context.Context) (models.PricingSchedule, error) {
	const query = `
		SELECT s.min_units, s.max_units, s.price_per_unit
		FROM pricing_slabs s
		WHERE s.schedule_id = (SELECT MAX(id) FROM pricing_schedules)
		ORDER BY s.position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pricing: load latest: %w", err)
	}
	defer rows.Close()

	var schedule models.PricingSchedule
	for rows.Next() {
		var (
			slab     models.PricingSlab
			maxUnits sql.NullFloat64
		)
		if err := rows.Scan(&slab.MinUnits, &maxUnits, &slab.PricePerUnit); err != nil {
			return nil, fmt.Errorf("pricing: scan: %w", err)
		}
		if maxUnits.Valid {
			upper := maxUnits.Float64
			slab.MaxUnits = &upper
		}
		schedule = append(schedule, slab)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pricing: iterate: %w", err)
	}
	if len(schedule) == 0 {
		return nil, ErrNoSchedule
	}
	return schedule, nil
}
