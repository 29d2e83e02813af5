// Package cmd - rules command
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"compliance-cost/core/extraction"
	"compliance-cost/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective driver extraction rule table",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := extraction.BuiltinRules()

		cfg := config.Get()
		if cfg.Extraction.RulesFile != "" {
			loaded, err := extraction.LoadRulesFile(cfg.Extraction.RulesFile)
			if err != nil {
				return err
			}
			rules = extraction.MergeRules(rules, loaded)
		}

		fmt.Printf("%-16s %-16s %-12s %-9s %10s %6s  %s\n",
			"RULE", "CATEGORY", "DEPARTMENT", "ONE-TIME", "BASE COST", "CONF", "KEYWORDS")
		for _, r := range rules {
			fmt.Printf("%-16s %-16s %-12s %-9t %10.0f %6.2f  %s\n",
				r.ID, r.Category, r.Department, r.IsOneTime, r.BaseCost, r.Confidence,
				strings.Join(r.Keywords, ", "))
		}
		return nil
	},
}
