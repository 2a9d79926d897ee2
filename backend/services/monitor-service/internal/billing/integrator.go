package billing

import "powermonitor/backend/services/monitor-service/internal/models"

// Integrate converts power samples (kW) into energy (kWh) with the trapezoidal
// rule over each pair of adjacent readings.
//
// Readings must be sorted by timestamp ascending. Pairs with a zero or negative
// time delta contribute nothing, so the result is never negative for
// non-negative power. Fewer than two readings yield zero.
func Integrate(readings []models.Reading) float64 {
	var energy float64
	for i := 1; i < len(readings); i++ {
		prev, cur := readings[i-1], readings[i]
		hours := cur.Timestamp.Sub(prev.Timestamp).Hours()
		if hours <= 0 {
			continue
		}
		energy += (prev.Power + cur.Power) / 2 * hours
	}
	return energy
}
