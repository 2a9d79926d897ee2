package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"powermonitor/backend/services/monitor-service/internal/models"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type billOutput struct {
	TotalEnergy   float64             `json:"totalEnergy"`
	TotalCost     float64             `json:"totalCost"`
	SlabBreakdown []models.SlabCharge `json:"slabBreakdown"`
	ReadingsCount int                 `json:"readingsCount"`
}

func writeBill(w io.Writer, format string, result models.BillingResult, withReadings bool) error {
	switch format {
	case formatJSON:
		out := billOutput{
			TotalEnergy:   decimal.NewFromFloat(result.TotalEnergy).Round(4).InexactFloat64(),
			TotalCost:     decimal.NewFromFloat(result.TotalCost).Round(2).InexactFloat64(),
			SlabBreakdown: result.Breakdown,
			ReadingsCount: result.ReadingsCount,
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case formatText:
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANGE\tUNITS\tPRICE\tCOST")
	for _, c := range result.Breakdown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			c.RangeLabel,
			decimal.NewFromFloat(c.Units).StringFixed(4),
			decimal.NewFromFloat(c.PricePerUnit).StringFixed(2),
			decimal.NewFromFloat(c.Cost).StringFixed(2),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if withReadings {
		fmt.Fprintf(w, "Readings: %d\n", result.ReadingsCount)
	}
	fmt.Fprintf(w, "Energy:   %s kWh\n", decimal.NewFromFloat(result.TotalEnergy).StringFixed(4))
	fmt.Fprintf(w, "Total:    %s\n", decimal.NewFromFloat(result.TotalCost).StringFixed(2))
	return nil
}

func writeSchedule(w io.Writer, schedule models.PricingSchedule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANGE\tPRICE")
	for _, slab := range schedule {
		fmt.Fprintf(tw, "%s\t%s\n", slab.RangeLabel(), decimal.NewFromFloat(slab.PricePerUnit).StringFixed(2))
	}
	return tw.Flush()
}
