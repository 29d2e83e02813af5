// Package cmd provides the CLI commands for compliance-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compliance-cost/internal/config"
	"compliance-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "compliance-cost",
	Short: "Estimate the financial impact of regulatory compliance",
	Long: `compliance-cost estimates what a regulation will cost a company.

It extracts discrete cost drivers from regulation text, calibrates them
to the company's size, industry, geography, and technology maturity,
allocates costs across departments, and compares implementation
scenarios.

Examples:
  compliance-cost estimate gdpr.txt --profile company.yaml
  compliance-cost estimate dora.txt --profile bank.yaml --format json
  compliance-cost portfolio estimates/*.json --years 5`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.compliance-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("compliance-cost version 0.1.0")
	},
}
