package repository

import (
	"context"
	"database/sql"
	"fmt"

	"powermonitor/backend/services/monitor-service/internal/models"
)

// ReadingRepository archives readings in postgres.
type ReadingRepository struct {
	db *sql.DB
}

// NewReadingRepository returns repository.
func NewReadingRepository(db *sql.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Insert stores a reading; replays of the same id are ignored.
func (r *ReadingRepository) Insert(ctx context.Context, reading models.Reading) error {
	const query = `
		INSERT INTO power_readings (id, voltage, current, power, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query,
		reading.ID,
		reading.Voltage,
		reading.Current,
		reading.Power,
		reading.Timestamp,
	); err != nil {
		return fmt.Errorf("readings: insert: %w", err)
	}
	return nil
}

// ListRecent returns up to limit newest readings in ascending timestamp order.
func (r *ReadingRepository) ListRecent(ctx context.Context, limit int) ([]models.Reading, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, voltage, current, power, recorded_at
		FROM (
			SELECT id, voltage, current, power, recorded_at
			FROM power_readings
			ORDER BY recorded_at DESC
			LIMIT $1
		) recent
		ORDER BY recorded_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("readings: list recent: %w", err)
	}
	defer rows.Close()

	var readings []models.Reading
	for rows.Next() {
		var reading models.Reading
		if err := rows.Scan(
			&reading.ID,
			&reading.Voltage,
			&reading.Current,
			&reading.Power,
			&reading.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("readings: scan: %w", err)
		}
		reading.Timestamp = reading.Timestamp.UTC()
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("readings: iterate: %w", err)
	}
	return readings, nil
}
