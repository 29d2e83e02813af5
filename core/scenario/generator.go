// Package scenario derives the four fixed implementation strategies
// from a calibrated baseline.
package scenario

import (
	"math"

	"compliance-cost/core/types"
)

// delayPenalty is the fixed cost of deferring implementation 90 days
const delayPenalty = 15000

// BaseCost is the calibrated baseline scenarios are derived from
type BaseCost struct {
	// OneTimeCost is the midpoint one-time cost
	OneTimeCost float64

	// RecurringCostAnnual is the recurring annual cost
	RecurringCostAnnual float64
}

// FromEstimate takes the scenario baseline from a calibrated estimate
func FromEstimate(e *types.CostEstimate) BaseCost {
	return BaseCost{
		OneTimeCost:         e.OneTimeCostMid(),
		RecurringCostAnnual: e.RecurringCostAnnual,
	}
}

// Generate produces all four scenarios plus a recommendation
func Generate(base BaseCost, profile types.CompanyProfile) types.ScenarioAnalysis {
	minimal := build(
		"Minimal Compliance",
		"Meet the letter of the regulation with the smallest viable scope",
		base.OneTimeCost*0.7,
		base.RecurringCostAnnual*0.7,
		types.RiskMedium,
		[]string{
			"Only mandatory requirements are implemented",
			"Manual processes substitute for system changes where allowed",
			"Higher residual risk of findings on first audit",
		},
	)

	standard := build(
		"Standard Implementation",
		"Full compliance with established practices and tooling",
		base.OneTimeCost,
		base.RecurringCostAnnual,
		types.RiskLow,
		[]string{
			"All identified cost drivers are implemented as estimated",
			"Existing vendors and internal teams deliver the work",
		},
	)

	bestInClass := build(
		"Best in Class",
		"Exceed requirements with automation and continuous monitoring",
		base.OneTimeCost*1.4,
		base.RecurringCostAnnual*1.4,
		types.RiskMinimal,
		[]string{
			"Automated evidence collection and monitoring",
			"Headroom for adjacent regulations in the same domain",
		},
	)

	delayed := build(
		"Delay 90 Days",
		"Defer implementation one quarter, absorbing rush and penalty costs",
		base.OneTimeCost*1.25+delayPenalty,
		base.RecurringCostAnnual,
		types.RiskHigh,
		[]string{
			"Compressed delivery raises implementation cost 25%",
			"Fixed penalty exposure for the deferred quarter",
			"Recurring obligations are unchanged once live",
		},
	)

	return types.ScenarioAnalysis{
		Minimal:     minimal,
		Standard:    standard,
		BestInClass: bestInClass,
		Delay90Days: delayed,
		Recommended: Recommend(profile),
	}
}

// build finalizes one scenario; the three-year total is computed after
// the scenario-specific multiplier and penalty are applied.
func build(name, description string, oneTime, recurring float64, risk types.RiskLevel, assumptions []string) types.CostScenario {
	oneTime = math.Round(oneTime)
	recurring = math.Round(recurring)
	return types.CostScenario{
		Name:                name,
		Description:         description,
		OneTimeCost:         oneTime,
		RecurringCostAnnual: recurring,
		ThreeYearTotal:      oneTime + recurring*3,
		RiskLevel:           risk,
		Assumptions:         assumptions,
	}
}

// Recommend picks a scenario from the risk appetite, then lets industry
// override it: regulated industries always get the standard strategy,
// regardless of stated appetite. The override ordering is deliberate
// and must not be reordered.
func Recommend(profile types.CompanyProfile) types.ScenarioKey {
	recommended := types.ScenarioStandard
	switch profile.RiskAppetite {
	case types.RiskAppetiteLow, types.RiskAppetiteMinimal:
		recommended = types.ScenarioStandard
	case types.RiskAppetiteHigh:
		recommended = types.ScenarioMinimal
	}

	if profile.Industry == types.IndustryFinance || profile.Industry == types.IndustryHealthcare {
		recommended = types.ScenarioStandard
	}

	return recommended
}
