// Package cmd provides the powerctl commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"powermonitor/backend/libs/logging"
	"powermonitor/backend/services/monitor-service/internal/billing"
	"powermonitor/backend/services/monitor-service/internal/config"
	"powermonitor/backend/services/monitor-service/internal/models"
)

type options struct {
	pricingFile string
	verbose     bool
	logger      *zap.Logger
}

// NewRootCommand builds the powerctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "powerctl",
		Short: "Offline tools for power readings and slab pricing",
		Long: `powerctl bills exported meter readings against a slab pricing schedule
without a running monitor service.

Examples:
  powerctl validate --pricing slabs.yaml
  powerctl bill --energy 45
  powerctl integrate readings.csv
  powerctl cost --pricing slabs.yaml --start 2024-03-01T00:00:00Z readings.csv`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewConsoleLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			opts.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.pricingFile, "pricing", "p", "", "YAML pricing file with a slabs list (default: built-in schedule)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newValidateCommand(opts),
		newBillCommand(opts),
		newIntegrateCommand(opts),
		newCostCommand(opts),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

// schedule returns the validated schedule named by --pricing.
func (o *options) schedule() (models.PricingSchedule, error) {
	if o.pricingFile == "" {
		return models.DefaultSchedule(), nil
	}
	slabs, err := config.LoadPricingFile(o.pricingFile)
	if err != nil {
		return nil, err
	}
	return billing.ValidateSchedule(slabs)
}

func (o *options) log() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}
