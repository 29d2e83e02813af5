// Package output - Terminal rendering
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"compliance-cost/core/engine"
	"compliance-cost/core/types"
)

// CLIFormatter renders reports as colored terminal tables
type CLIFormatter struct {
	header  *color.Color
	warning *color.Color
}

// NewCLIFormatter creates a terminal formatter.
// Money amounts stay uncolored: escape codes would break the fixed
// column widths.
func NewCLIFormatter(noColor bool) *CLIFormatter {
	f := &CLIFormatter{
		header:  color.New(color.FgCyan, color.Bold),
		warning: color.New(color.FgYellow),
	}
	if noColor {
		f.header.DisableColor()
		f.warning.DisableColor()
	}
	return f
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// RenderEstimate writes one estimation report
func (f *CLIFormatter) RenderEstimate(w io.Writer, report *engine.EstimationReport) error {
	e := report.Estimate

	f.header.Fprintln(w, "Compliance Cost Estimate")
	fmt.Fprintf(w, "  Regulation:  %s\n", e.RegulationVersionID)
	fmt.Fprintf(w, "  Method:      %s\n", e.EstimationMethod)
	fmt.Fprintf(w, "  Confidence:  %.2f\n", e.Confidence)
	fmt.Fprintf(w, "  One-time:    %s - %s\n", money(e.OneTimeCostLow), money(e.OneTimeCostHigh))
	fmt.Fprintf(w, "  Recurring:   %s / year\n", money(e.RecurringCostAnnual))
	fmt.Fprintln(w)

	f.header.Fprintln(w, "Department Breakdown")
	for _, b := range e.DepartmentBreakdown {
		fmt.Fprintf(w, "  %-12s %-14s one-time %-12s recurring %-12s %.2f FTE\n",
			b.Department, b.BudgetCode, money(b.OneTimeCost), money(b.RecurringCostAnnual), b.FTEImpact)
	}
	fmt.Fprintln(w)

	f.header.Fprintln(w, "Scenarios")
	f.renderScenario(w, report.Scenarios.Minimal, report.Scenarios.Recommended == types.ScenarioMinimal)
	f.renderScenario(w, report.Scenarios.Standard, report.Scenarios.Recommended == types.ScenarioStandard)
	f.renderScenario(w, report.Scenarios.BestInClass, report.Scenarios.Recommended == types.ScenarioBestInClass)
	f.renderScenario(w, report.Scenarios.Delay90Days, report.Scenarios.Recommended == types.ScenarioDelay90Days)
	fmt.Fprintln(w)

	f.header.Fprintln(w, "Sensitivity")
	for _, factor := range report.Sensitivity.Factors {
		fmt.Fprintf(w, "  %s\n", factor.Factor)
		for _, p := range factor.Points {
			fmt.Fprintf(w, "    %-8s %s - %s (%+.1f%%)\n",
				p.Label, money(p.OneTimeCostLow), money(p.OneTimeCostHigh), p.PercentChange)
		}
		if factor.Recommendation != "" {
			f.warning.Fprintf(w, "    note: %s\n", factor.Recommendation)
		}
	}

	return nil
}

func (f *CLIFormatter) renderScenario(w io.Writer, s types.CostScenario, recommended bool) {
	marker := " "
	if recommended {
		marker = "*"
	}
	fmt.Fprintf(w, "  %s %-24s one-time %-12s recurring %-12s 3yr %-12s risk %s\n",
		marker, s.Name, money(s.OneTimeCost), money(s.RecurringCostAnnual),
		money(s.ThreeYearTotal), s.RiskLevel)
}

// RenderPortfolio writes a portfolio report
func (f *CLIFormatter) RenderPortfolio(w io.Writer, report *engine.PortfolioReport) error {
	t := report.Trend

	f.header.Fprintln(w, "Portfolio")
	fmt.Fprintf(w, "  Estimates:       %d\n", t.EstimateCount)
	fmt.Fprintf(w, "  One-time:        %s - %s\n", money(t.TotalOneTimeLow), money(t.TotalOneTimeHigh))
	fmt.Fprintf(w, "  Recurring:       %s / year\n", money(t.TotalRecurringAnnual))
	fmt.Fprintf(w, "  3-year exposure: %s - %s\n", money(t.ThreeYearExposureLow), money(t.ThreeYearExposureHigh))
	fmt.Fprintln(w)

	if len(t.ByDepartment) > 0 {
		f.header.Fprintln(w, "By Department")
		for _, d := range t.ByDepartment {
			fmt.Fprintf(w, "  %-12s one-time %-12s recurring %s\n",
				d.Department, money(d.OneTimeCost), money(d.RecurringCostAnnual))
		}
		fmt.Fprintln(w)
	}

	if len(t.TopDrivers) > 0 {
		f.header.Fprintln(w, "Top Drivers")
		for i, r := range t.TopDrivers {
			fmt.Fprintf(w, "  %2d. %-16s %-12s %s\n",
				i+1, r.Driver.Category, money(r.Driver.EstimatedCost), r.Driver.Description)
		}
		fmt.Fprintln(w)
	}

	f.header.Fprintln(w, "Forecast")
	for _, y := range report.Forecast.Years {
		fmt.Fprintf(w, "  Year %d: one-time %-12s recurring %-12s cumulative %s\n",
			y.Year, money(y.OneTimeCost), money(y.RecurringCost), money(y.CumulativeCost))
	}
	for _, risk := range report.Forecast.RiskFactors {
		f.warning.Fprintf(w, "  warning: %s\n", risk)
	}

	return nil
}

// money renders a whole-currency amount
func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).Round(0).StringFixed(0)
}
