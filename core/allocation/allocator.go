// Package allocation redistributes calibrated driver costs into named
// departments with FTE impact and budget codes. The numeric allocation
// is deterministic; model enrichment only ever adds detail.
package allocation

import (
	"math"

	"compliance-cost/core/types"
)

// budgetCodeSuffix is the fixed compliance budget code suffix
const budgetCodeSuffix = "-COMP-001"

// Allocate splits driver costs across the fixed department list using
// the calibration multiplier. Departments with no drivers are omitted
// entirely, not emitted with zero values.
func Allocate(drivers []types.CostDriver, profile types.CompanyProfile, multiplier float64) []types.DepartmentCostBreakdown {
	breakdowns := make([]types.DepartmentCostBreakdown, 0, len(types.AllDepartments))

	for _, dept := range types.AllDepartments {
		var lineItems []types.CostDriver
		var oneTime, recurring float64

		for _, d := range drivers {
			if d.Department != dept {
				continue
			}
			lineItems = append(lineItems, d)
			if d.IsOneTime {
				oneTime += d.EstimatedCost
			} else {
				recurring += d.EstimatedCost
			}
		}
		if len(lineItems) == 0 {
			continue
		}

		oneTime = math.Round(oneTime * multiplier)
		recurring = math.Round(recurring * multiplier)

		breakdowns = append(breakdowns, types.DepartmentCostBreakdown{
			Department:          dept,
			OneTimeCost:         oneTime,
			RecurringCostAnnual: recurring,
			FTEImpact:           fteImpact(oneTime, recurring),
			BudgetCode:          BudgetCode(dept),
			LineItems:           lineItems,
		})
	}

	return breakdowns
}

// fteImpact derives headcount impact from dollar volume: one recurring
// FTE per $100k annual, one implementation FTE per $200k one-time.
func fteImpact(oneTime, recurring float64) float64 {
	impact := recurring/100000 + oneTime/200000
	return math.Round(impact*100) / 100
}

// BudgetCode builds the deterministic DEPT-COMP-001 budget code from
// the first four letters of the department name.
func BudgetCode(dept types.Department) string {
	name := dept.String()
	if len(name) > 4 {
		name = name[:4]
	}
	return name + budgetCodeSuffix
}
