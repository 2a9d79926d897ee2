package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricingSlab is one consumption tier. A nil MaxUnits marks the unbounded tail.
type PricingSlab struct {
	MinUnits     float64  `json:"minUnits" yaml:"minUnits"`
	MaxUnits     *float64 `json:"maxUnits" yaml:"maxUnits"`
	PricePerUnit float64  `json:"pricePerUnit" yaml:"pricePerUnit"`
}

// Unbounded reports whether the slab absorbs all remaining consumption.
func (s PricingSlab) Unbounded() bool {
	return s.MaxUnits == nil
}

// RangeLabel renders the slab bounds as "min-max" or "min+".
func (s PricingSlab) RangeLabel() string {
	lower := decimal.NewFromFloat(s.MinUnits).String()
	if s.Unbounded() {
		return lower + "+"
	}
	return fmt.Sprintf("%s-%s", lower, decimal.NewFromFloat(*s.MaxUnits).String())
}

// PricingSchedule is an ordered list of slabs. Values held by a slab store are
// always validated: sorted, contiguous, starting at zero and ending unbounded.
type PricingSchedule []PricingSlab

// Clone returns a deep copy so callers cannot alias the store's slabs.
func (p PricingSchedule) Clone() PricingSchedule {
	if p == nil {
		return nil
	}
	out := make(PricingSchedule, len(p))
	for i, s := range p {
		out[i] = s
		if s.MaxUnits != nil {
			upper := *s.MaxUnits
			out[i].MaxUnits = &upper
		}
	}
	return out
}

// Bounded returns a slab covering [from, to).
func Bounded(from, to, price float64) PricingSlab {
	return PricingSlab{MinUnits: from, MaxUnits: &to, PricePerUnit: price}
}

// OpenEnded returns the unbounded slab starting at from.
func OpenEnded(from, price float64) PricingSlab {
	return PricingSlab{MinUnits: from, PricePerUnit: price}
}

// DefaultSchedule is the tariff used until an operator uploads a different one.
func DefaultSchedule() PricingSchedule {
	return PricingSchedule{
		Bounded(0, 20, 3.5),
		Bounded(20, 30, 5.0),
		Bounded(30, 50, 6.5),
		Bounded(50, 100, 8.0),
		OpenEnded(100, 10.0),
	}
}
