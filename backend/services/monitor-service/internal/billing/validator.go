package billing

import (
	"math"
	"sort"

	"powermonitor/backend/services/monitor-service/internal/models"
)

// ValidateSchedule normalizes a candidate slab list and checks every invariant
// an active schedule must hold. The candidate is not modified; on success a
// sorted copy is returned. Prices are not required to increase across slabs.
func ValidateSchedule(candidate []models.PricingSlab) (models.PricingSchedule, error) {
	if len(candidate) == 0 {
		return nil, invalid(-1, "at least one slab is required")
	}

	schedule := models.PricingSchedule(candidate).Clone()
	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].MinUnits < schedule[j].MinUnits
	})

	for i, slab := range schedule {
		if !finite(slab.MinUnits) || (slab.MaxUnits != nil && !finite(*slab.MaxUnits)) || !finite(slab.PricePerUnit) {
			return nil, invalid(i, "bounds and price must be finite numbers")
		}
	}

	if schedule[0].MinUnits != 0 {
		return nil, invalid(0, "first slab must start at 0 units, got %v", schedule[0].MinUnits)
	}

	last := len(schedule) - 1
	for i, slab := range schedule[:last] {
		if slab.Unbounded() {
			return nil, invalid(i, "only the last slab may be unbounded")
		}
	}
	if !schedule[last].Unbounded() {
		return nil, invalid(last, "last slab must be unbounded (maxUnits null)")
	}

	for i := 0; i < last; i++ {
		if *schedule[i].MaxUnits != schedule[i+1].MinUnits {
			return nil, invalid(i+1, "slab must start where the previous one ends (%v), got %v",
				*schedule[i].MaxUnits, schedule[i+1].MinUnits)
		}
	}

	for i, slab := range schedule {
		if slab.PricePerUnit < 0 {
			return nil, invalid(i, "price per unit must not be negative, got %v", slab.PricePerUnit)
		}
	}

	for i, slab := range schedule[:last] {
		if *slab.MaxUnits <= slab.MinUnits {
			return nil, invalid(i, "maxUnits %v must be greater than minUnits %v", *slab.MaxUnits, slab.MinUnits)
		}
	}

	return schedule, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
