package models

// SlabCharge is the share of a bill attributed to one slab.
type SlabCharge struct {
	RangeLabel   string  `json:"range"`
	Units        float64 `json:"units"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Cost         float64 `json:"cost"`
}

// BillingResult is the full-precision outcome of billing an energy quantity.
type BillingResult struct {
	TotalEnergy   float64      `json:"totalEnergy"`
	TotalCost     float64      `json:"totalCost"`
	Breakdown     []SlabCharge `json:"slabBreakdown"`
	ReadingsCount int          `json:"readingsCount"`
}
