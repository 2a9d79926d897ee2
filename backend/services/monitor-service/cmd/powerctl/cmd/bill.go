package cmd

import (
	"github.com/spf13/cobra"

	"powermonitor/backend/services/monitor-service/internal/billing"
)

func newBillCommand(opts *options) *cobra.Command {
	var (
		energy float64
		format string
	)

	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Price an amount of energy",
		Long: `Distribute --energy kWh across the slabs of the pricing schedule and print
the per-slab breakdown.

Examples:
  powerctl bill --energy 45
  powerctl bill --energy 120 --pricing slabs.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := opts.schedule()
			if err != nil {
				return err
			}
			result, err := billing.Bill(energy, schedule)
			if err != nil {
				return err
			}
			return writeBill(cmd.OutOrStdout(), format, result, false)
		},
	}

	cmd.Flags().Float64VarP(&energy, "energy", "e", 0, "energy in kWh")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	_ = cmd.MarkFlagRequired("energy")
	return cmd
}
