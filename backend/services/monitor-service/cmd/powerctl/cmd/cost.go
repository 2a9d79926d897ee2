package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace/noop"

	"powermonitor/backend/services/monitor-service/internal/service"
	"powermonitor/backend/services/monitor-service/internal/store"
)

func newCostCommand(opts *options) *cobra.Command {
	var (
		start, end string
		format     string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "cost <readings.csv>",
		Short: "Bill the readings of a CSV export",
		Long: `Integrate the readings inside [--start, --end] and bill the energy against
the pricing schedule. Without bounds the whole file is billed.

Examples:
  powerctl cost readings.csv
  powerctl cost --start 2024-03-01T00:00:00Z --end 2024-03-02T00:00:00Z readings.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := opts.schedule()
			if err != nil {
				return err
			}
			readings, err := loadReadings(opts, args[0], strict)
			if err != nil {
				return err
			}

			history := store.NewMemoryReadingStore(len(readings))
			for _, r := range readings {
				history.Append(r)
			}
			svc := service.NewBillingService(history, store.NewMemorySlabStore(schedule),
				noop.NewTracerProvider().Tracer("powerctl"), opts.log())

			from, to, err := window(start, end, history)
			if err != nil {
				return err
			}
			result, err := svc.CalculateCost(context.Background(), from, to)
			if err != nil {
				return err
			}
			return writeBill(cmd.OutOrStdout(), format, result, true)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "window start, RFC 3339 (default: first reading)")
	cmd.Flags().StringVar(&end, "end", "", "window end, RFC 3339 (default: last reading)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on any unparsable row instead of skipping it")
	return cmd
}

func window(start, end string, history store.ReadingStore) (time.Time, time.Time, error) {
	all := history.Recent(0)
	var from, to time.Time
	if len(all) > 0 {
		from, to = all[0].Timestamp, all[len(all)-1].Timestamp
	}

	var err error
	if start != "" {
		if from, err = time.Parse(time.RFC3339Nano, start); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --start: %w", err)
		}
	}
	if end != "" {
		if to, err = time.Parse(time.RFC3339Nano, end); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --end: %w", err)
		}
	}
	return from, to, nil
}
