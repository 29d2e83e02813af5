// Package sensitivity perturbs profile assumptions to show bounded cost
// ranges under each perturbation. All factor math reuses the exact
// calibration formulas; nothing here approximates independently.
package sensitivity

import (
	"math"

	"compliance-cost/core/calibration"
	"compliance-cost/core/types"
)

// Thresholds above which a factor earns a recommendation
const (
	employeeThreshold = 500
	geoThreshold      = 10
)

// Analyze sweeps company size, geographic complexity, and the
// tech-maturity confidence proxy across three points each, scaling the
// known estimate bounds by the perturbed sub-factor's ratio against the
// baseline.
func Analyze(estimate *types.CostEstimate, profile types.CompanyProfile, drivers []types.CostDriver) types.SensitivityAnalysis {
	profile = profile.Normalize()

	return types.SensitivityAnalysis{
		BaselineOneTimeLow:      estimate.OneTimeCostLow,
		BaselineOneTimeHigh:     estimate.OneTimeCostHigh,
		BaselineRecurringAnnual: estimate.RecurringCostAnnual,
		Factors: []types.FactorSensitivity{
			sizeSensitivity(estimate, profile),
			geoSensitivity(estimate, profile),
			techSensitivity(estimate, drivers, profile),
		},
	}
}

// sizeSensitivity sweeps employee count at half, current, and double
func sizeSensitivity(estimate *types.CostEstimate, profile types.CompanyProfile) types.FactorSensitivity {
	baseFactor := calibration.SizeFactor(profile.EmployeeCount)
	counts := []struct {
		label string
		value int
	}{
		{"half", max(1, profile.EmployeeCount/2)},
		{"current", profile.EmployeeCount},
		{"double", profile.EmployeeCount * 2},
	}

	points := make([]types.ImpactPoint, 0, len(counts))
	for _, c := range counts {
		ratio := calibration.SizeFactor(c.value) / baseFactor
		points = append(points, scaledPoint(estimate, c.label, float64(c.value), ratio))
	}

	fs := types.FactorSensitivity{
		Factor: types.FactorCompanySize,
		Points: points,
	}
	if profile.EmployeeCount > employeeThreshold {
		fs.Recommendation = "Headcount above 500 dominates the estimate; validate the employee count and consider phased rollout by business unit."
	}
	return fs
}

// geoSensitivity sweeps jurisdiction count at half, current, and double
func geoSensitivity(estimate *types.CostEstimate, profile types.CompanyProfile) types.FactorSensitivity {
	baseFactor := calibration.GeoFactor(profile.GeographicComplexity)
	counts := []struct {
		label string
		value int
	}{
		{"half", max(1, profile.GeographicComplexity/2)},
		{"current", profile.GeographicComplexity},
		{"double", profile.GeographicComplexity * 2},
	}

	points := make([]types.ImpactPoint, 0, len(counts))
	for _, c := range counts {
		ratio := calibration.GeoFactor(c.value) / baseFactor
		points = append(points, scaledPoint(estimate, c.label, float64(c.value), ratio))
	}

	fs := types.FactorSensitivity{
		Factor: types.FactorGeography,
		Points: points,
	}
	if profile.GeographicComplexity > geoThreshold {
		fs.Recommendation = "More than 10 jurisdictions in scope; a jurisdiction-by-jurisdiction phase plan will spread the geographic premium."
	}
	return fs
}

// techSensitivity perturbs the driver-confidence proxy by +/-0.2,
// widening or narrowing the band around the unchanged midpoint.
func techSensitivity(estimate *types.CostEstimate, drivers []types.CostDriver, profile types.CompanyProfile) types.FactorSensitivity {
	mid := estimate.OneTimeCostMid()
	baseConfidence := calibration.AverageConfidence(drivers)

	perturbations := []struct {
		label string
		delta float64
	}{
		{"-0.2", -0.2},
		{"current", 0},
		{"+0.2", 0.2},
	}

	points := make([]types.ImpactPoint, 0, len(perturbations))
	for _, p := range perturbations {
		confidence := clamp01(baseConfidence + p.delta)
		spread := calibration.ConfidenceSpread(confidence)
		high := math.Round(mid * (1 + spread))
		points = append(points, types.ImpactPoint{
			Label:           p.label,
			Value:           confidence,
			OneTimeCostLow:  math.Round(mid * (1 - spread)),
			OneTimeCostHigh: high,
			PercentChange:   percentChange(high, estimate.OneTimeCostHigh),
		})
	}

	fs := types.FactorSensitivity{
		Factor: types.FactorTechMaturity,
		Points: points,
	}
	if profile.TechMaturity == types.TechMaturityLow {
		fs.Recommendation = "Low technology maturity adds a 20% premium; foundational tooling investment would reduce every future regulation's cost."
	}
	return fs
}

// scaledPoint scales the estimate's bounds by a sub-factor ratio
func scaledPoint(estimate *types.CostEstimate, label string, value, ratio float64) types.ImpactPoint {
	return types.ImpactPoint{
		Label:           label,
		Value:           value,
		OneTimeCostLow:  math.Round(estimate.OneTimeCostLow * ratio),
		OneTimeCostHigh: math.Round(estimate.OneTimeCostHigh * ratio),
		PercentChange:   (ratio - 1) * 100,
	}
}

func percentChange(value, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (value - baseline) / baseline * 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
