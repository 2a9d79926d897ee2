package billing

import "powermonitor/backend/services/monitor-service/internal/models"

// HourlyCostEstimate prices one hour of the given instantaneous draw (kW).
//
// It always uses the first slab's rate, regardless of how much has already been
// consumed in the billing period. This mirrors the dashboard figure users have
// been shown so far; pricing at the marginal slab would change what they see.
func HourlyCostEstimate(powerKW float64, schedule models.PricingSchedule) (float64, error) {
	if len(schedule) == 0 {
		return 0, ErrConfiguration
	}
	return powerKW * schedule[0].PricePerUnit, nil
}
