// Package portfolio aggregates many estimates into department and risk
// bucketed totals and projects them forward. Pure reductions over the
// input list; no shared mutable state.
package portfolio

import (
	"sort"

	"compliance-cost/core/types"
)

// topDriverLimit caps the ranked driver list
const topDriverLimit = 10

// Aggregate sums a customer's estimates into a portfolio trend.
// Empty input yields an all-zero trend, never an error.
func Aggregate(estimates []*types.CostEstimate) *types.PortfolioTrend {
	trend := &types.PortfolioTrend{
		EstimateCount: len(estimates),
		ByRiskLevel:   emptyRiskBuckets(),
		TopDrivers:    []types.RankedDriver{},
		ByDepartment:  []types.DepartmentTotal{},
	}
	if len(estimates) == 0 {
		return trend
	}

	deptTotals := make(map[types.Department]*types.DepartmentTotal)
	var confidenceSum float64
	var ranked []types.RankedDriver

	for _, e := range estimates {
		trend.TotalOneTimeLow += e.OneTimeCostLow
		trend.TotalOneTimeHigh += e.OneTimeCostHigh
		trend.TotalRecurringAnnual += e.RecurringCostAnnual
		confidenceSum += e.Confidence

		for _, b := range e.DepartmentBreakdown {
			t, ok := deptTotals[b.Department]
			if !ok {
				t = &types.DepartmentTotal{Department: b.Department}
				deptTotals[b.Department] = t
			}
			t.OneTimeCost += b.OneTimeCost
			t.RecurringCostAnnual += b.RecurringCostAnnual
		}

		lowExposure, _ := e.ThreeYearTotal()
		trend.ByRiskLevel[ClassifyEstimateRisk(e)] += lowExposure

		for _, d := range e.CostDrivers {
			ranked = append(ranked, types.RankedDriver{
				Driver:              d,
				EstimateID:          e.ID,
				RegulationVersionID: e.RegulationVersionID,
			})
		}
	}

	trend.ThreeYearExposureLow = trend.TotalOneTimeLow + trend.TotalRecurringAnnual*3
	trend.ThreeYearExposureHigh = trend.TotalOneTimeHigh + trend.TotalRecurringAnnual*3
	trend.AverageConfidence = confidenceSum / float64(len(estimates))

	// Fixed department order keeps output deterministic
	for _, dept := range types.AllDepartments {
		if t, ok := deptTotals[dept]; ok {
			trend.ByDepartment = append(trend.ByDepartment, *t)
		}
	}

	trend.TopDrivers = rankDrivers(ranked)
	return trend
}

// ClassifyEstimateRisk buckets an estimate by its confidence. Low
// extraction confidence means the cost band is wide and the estimate
// itself is the risk.
func ClassifyEstimateRisk(e *types.CostEstimate) types.RiskLevel {
	switch {
	case e.Confidence >= 0.85:
		return types.RiskMinimal
	case e.Confidence >= 0.70:
		return types.RiskLow
	case e.Confidence >= 0.50:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}

// rankDrivers sorts descending by cost with a stable ID tie-break and
// truncates to the limit
func rankDrivers(ranked []types.RankedDriver) []types.RankedDriver {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Driver.EstimatedCost != ranked[j].Driver.EstimatedCost {
			return ranked[i].Driver.EstimatedCost > ranked[j].Driver.EstimatedCost
		}
		return ranked[i].Driver.ID < ranked[j].Driver.ID
	})
	if len(ranked) > topDriverLimit {
		ranked = ranked[:topDriverLimit]
	}
	if ranked == nil {
		ranked = []types.RankedDriver{}
	}
	return ranked
}

func emptyRiskBuckets() map[types.RiskLevel]float64 {
	buckets := make(map[types.RiskLevel]float64, len(types.AllRiskLevels))
	for _, level := range types.AllRiskLevels {
		buckets[level] = 0
	}
	return buckets
}
