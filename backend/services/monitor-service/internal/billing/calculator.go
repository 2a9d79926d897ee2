package billing

import (
	"fmt"
	"math"

	"powermonitor/backend/services/monitor-service/internal/models"
)

// Bill spreads energy over the schedule's slabs in ascending order, filling
// each slab to capacity before moving to the next; the unbounded tail absorbs
// whatever is left. ReadingsCount is left for the caller to fill.
//
// The schedule is trusted to be valid (see ValidateSchedule); only emptiness
// is checked here.
func Bill(energy float64, schedule models.PricingSchedule) (models.BillingResult, error) {
	if len(schedule) == 0 {
		return models.BillingResult{}, ErrConfiguration
	}
	if energy < 0 || math.IsNaN(energy) || math.IsInf(energy, 0) {
		return models.BillingResult{}, fmt.Errorf("billing: energy must be a finite non-negative number, got %v", energy)
	}

	result := models.BillingResult{
		TotalEnergy: energy,
		Breakdown:   make([]models.SlabCharge, 0, len(schedule)),
	}

	remaining := energy
	for _, slab := range schedule {
		if remaining <= 0 {
			break
		}

		capacity := remaining
		if !slab.Unbounded() {
			capacity = *slab.MaxUnits - slab.MinUnits
		}
		units := math.Min(remaining, capacity)

		if units > 0 {
			cost := units * slab.PricePerUnit
			result.Breakdown = append(result.Breakdown, models.SlabCharge{
				RangeLabel:   slab.RangeLabel(),
				Units:        units,
				PricePerUnit: slab.PricePerUnit,
				Cost:         cost,
			})
			result.TotalCost += cost
		}
		remaining -= units
	}

	return result, nil
}
