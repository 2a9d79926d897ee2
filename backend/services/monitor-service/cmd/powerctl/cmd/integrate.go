package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/billing"
	"powermonitor/backend/services/monitor-service/internal/csvload"
	"powermonitor/backend/services/monitor-service/internal/models"
)

func newIntegrateCommand(opts *options) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "integrate <readings.csv>",
		Short: "Compute energy from a readings CSV",
		Long: `Integrate the power column of a CSV export (timestamp,voltage,current,power)
over time with the trapezoidal rule and print the energy in kWh.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			readings, err := loadReadings(opts, args[0], strict)
			if err != nil {
				return err
			}
			energy := billing.Integrate(readings)
			fmt.Fprintf(cmd.OutOrStdout(), "Readings: %d\nEnergy:   %s kWh\n",
				len(readings), decimal.NewFromFloat(energy).StringFixed(4))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on any unparsable row instead of skipping it")
	return cmd
}

// loadReadings parses path. Bad rows are logged and skipped unless strict.
func loadReadings(opts *options, path string, strict bool) ([]models.Reading, error) {
	readings, err := csvload.ParseFile(path)
	if err != nil && (strict || readings == nil) {
		return nil, fmt.Errorf("load readings %s: %w", path, err)
	}
	if err != nil {
		opts.log().Warn("skipped invalid rows", zap.String("file", path), zap.Error(err))
	}
	return readings, nil
}
