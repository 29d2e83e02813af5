// Package types - Sensitivity analysis types
package types

// SensitivityFactor names a perturbed input assumption
type SensitivityFactor string

const (
	FactorCompanySize  SensitivityFactor = "COMPANY_SIZE"
	FactorGeography    SensitivityFactor = "GEOGRAPHY"
	FactorTechMaturity SensitivityFactor = "TECH_MATURITY"
)

// String returns the string representation
func (f SensitivityFactor) String() string {
	return string(f)
}

// ImpactPoint is the cost band at one perturbed input value
type ImpactPoint struct {
	// Label describes the perturbation (e.g. "half", "current", "double")
	Label string `json:"label"`

	// Value is the perturbed input value
	Value float64 `json:"value"`

	// OneTimeCostLow is the scaled low bound
	OneTimeCostLow float64 `json:"one_time_cost_low"`

	// OneTimeCostHigh is the scaled high bound
	OneTimeCostHigh float64 `json:"one_time_cost_high"`

	// PercentChange is the change versus the unperturbed baseline
	PercentChange float64 `json:"percent_change"`
}

// FactorSensitivity is one factor's three-point impact sweep
type FactorSensitivity struct {
	// Factor is the perturbed assumption
	Factor SensitivityFactor `json:"factor"`

	// Points are the impact points in sweep order (low, current, high)
	Points []ImpactPoint `json:"points"`

	// Recommendation is emitted only when the factor crosses a fixed
	// threshold; empty otherwise
	Recommendation string `json:"recommendation,omitempty"`
}

// SensitivityAnalysis quantifies how the estimate moves as inputs vary
type SensitivityAnalysis struct {
	// BaselineOneTimeLow is the unperturbed low bound
	BaselineOneTimeLow float64 `json:"baseline_one_time_low"`

	// BaselineOneTimeHigh is the unperturbed high bound
	BaselineOneTimeHigh float64 `json:"baseline_one_time_high"`

	// BaselineRecurringAnnual is the unperturbed recurring cost
	BaselineRecurringAnnual float64 `json:"baseline_recurring_annual"`

	// Factors are the per-factor sweeps
	Factors []FactorSensitivity `json:"factors"`
}
