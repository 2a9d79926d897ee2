package repository

// Schema creates the tables used by the repositories when they do not exist.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS power_readings (
		id          TEXT PRIMARY KEY,
		voltage     DOUBLE PRECISION NOT NULL,
		current     DOUBLE PRECISION NOT NULL,
		power       DOUBLE PRECISION NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS power_readings_recorded_at_idx ON power_readings (recorded_at)`,
	`CREATE TABLE IF NOT EXISTS pricing_schedules (
		id         BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pricing_slabs (
		schedule_id    BIGINT NOT NULL REFERENCES pricing_schedules (id) ON DELETE CASCADE,
		position       INT NOT NULL,
		min_units      DOUBLE PRECISION NOT NULL,
		max_units      DOUBLE PRECISION,
		price_per_unit DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (schedule_id, position)
	)`,
}
