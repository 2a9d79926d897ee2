package models

import "time"

// Reading is a single electrical sample reported by a meter.
// Power is reported by the device in kW and is never derived from voltage and current.
type Reading struct {
	ID        string    `db:"id" json:"id"`
	Voltage   float64   `db:"voltage" json:"voltage"`
	Current   float64   `db:"current" json:"current"`
	Power     float64   `db:"power" json:"power"`
	Timestamp time.Time `db:"recorded_at" json:"timestamp"`
}
