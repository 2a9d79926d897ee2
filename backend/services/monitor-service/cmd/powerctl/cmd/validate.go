package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a pricing schedule",
		Long: `Check that the schedule given with --pricing starts at 0, has contiguous
slabs, non-negative prices and exactly one unbounded slab at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := opts.schedule()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Schedule is valid (%d slabs)\n", len(schedule))
			return writeSchedule(out, schedule)
		},
	}
}
