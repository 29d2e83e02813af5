// Package cmd - portfolio command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compliance-cost/core/output"
	"compliance-cost/core/types"
	"compliance-cost/internal/config"
)

var (
	portfolioYears  int
	portfolioFormat string
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio <estimate.json>...",
	Short: "Aggregate and forecast a set of saved estimates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		estimates := make([]*types.CostEstimate, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading estimate: %w", err)
			}
			var estimate types.CostEstimate
			if err := json.Unmarshal(data, &estimate); err != nil {
				return fmt.Errorf("parsing estimate %s: %w", path, err)
			}
			estimates = append(estimates, &estimate)
		}

		cfg := config.Get()
		eng, err := buildEngine(cfg, false)
		if err != nil {
			return err
		}
		report := eng.Portfolio(estimates, portfolioYears)

		format := portfolioFormat
		if format == "" {
			format = cfg.Output.DefaultFormat
		}
		return output.New(format, cfg.Output.NoColor).RenderPortfolio(os.Stdout, report)
	},
}

func init() {
	portfolioCmd.Flags().IntVar(&portfolioYears, "years", 3, "forecast horizon in years")
	portfolioCmd.Flags().StringVarP(&portfolioFormat, "format", "f", "", "output format (cli, json)")
}
