package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"construction-takeoff/core/estimate"
	"construction-takeoff/core/output"
	"construction-takeoff/core/review"
	"construction-takeoff/core/service"
	"construction-takeoff/internal/config"
)

var (
	takeoffTrade  string
	takeoffInput  string
	takeoffFormat string
)

// takeoffCmd runs a trade takeoff over a drawing set
var takeoffCmd = &cobra.Command{
	Use:   "takeoff",
	Short: "Run a trade takeoff over a drawing set",
	Long: `Load a drawing set (directory, zip archive, or single PDF), extract and
classify its elements, and price the requested trade.

The review summary printed alongside the estimate lists every assumption
and data gap; the estimate should not be trusted until those are confirmed.

Examples:
  construction-takeoff takeoff --trade concrete --input ./plans
  construction-takeoff takeoff --trade concrete --input plans.zip --format json`,
	RunE: runTakeoff,
}

func init() {
	takeoffCmd.Flags().StringVarP(&takeoffTrade, "trade", "t", "", "trade to estimate (e.g. concrete)")
	takeoffCmd.Flags().StringVarP(&takeoffInput, "input", "i", "", "directory, zip archive, or PDF of drawing exports")
	takeoffCmd.Flags().StringVarP(&takeoffFormat, "format", "f", "", "output format (cli, json)")
	_ = takeoffCmd.MarkFlagRequired("trade")
	_ = takeoffCmd.MarkFlagRequired("input")
}

func runTakeoff(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	format := output.Format(takeoffFormat)
	if takeoffFormat == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}
	formatter, err := output.ForFormat(format)
	if err != nil {
		return err
	}

	inputPath, err := filepath.Abs(takeoffInput)
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}

	run, err := service.RunTradeTakeoff(takeoffTrade, inputPath,
		service.WithRegistry(registryFromConfig(cfg)))
	if err != nil {
		return err
	}

	return formatter.Render(os.Stdout, output.NewReport(run))
}

// registryFromConfig binds the configured rate tables to the estimators.
func registryFromConfig(cfg *config.Config) *estimate.Registry {
	registry := estimate.NewRegistry()
	_ = registry.Register("concrete", func(checklist *review.Checklist) estimate.TradeEstimator {
		return estimate.NewConcreteEstimator(checklist, cfg.Rates.Concrete)
	})
	return registry
}
