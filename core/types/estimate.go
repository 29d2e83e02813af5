// Package types - Estimate and department breakdown types
package types

import "time"

// EstimationMethod records how an estimate's drivers were produced
type EstimationMethod string

const (
	// MethodDeterministic means only the keyword rule engine ran
	MethodDeterministic EstimationMethod = "DETERMINISTIC"

	// MethodAICalibrated means generative-model extraction contributed
	MethodAICalibrated EstimationMethod = "AI_CALIBRATED"
)

// AllocationDetail is model-enriched task/role detail for one department.
// It is additive only: numeric breakdown fields are never derived from it.
type AllocationDetail struct {
	// Tasks are the concrete work items for this department
	Tasks []string `json:"tasks,omitempty"`

	// RoleSplit maps role names to FTE fractions
	RoleSplit map[string]float64 `json:"role_split,omitempty"`

	// RiskFactors are department-specific delivery risks
	RiskFactors []string `json:"risk_factors,omitempty"`

	// Sequencing describes recommended execution order
	Sequencing string `json:"sequencing,omitempty"`
}

// DepartmentCostBreakdown is one department's share of a calibrated
// estimate. Departments with no drivers are omitted entirely.
type DepartmentCostBreakdown struct {
	// Department is the organizational unit
	Department Department `json:"department"`

	// OneTimeCost is the calibrated one-time cost
	OneTimeCost float64 `json:"one_time_cost"`

	// RecurringCostAnnual is the calibrated recurring annual cost
	RecurringCostAnnual float64 `json:"recurring_cost_annual"`

	// FTEImpact is the derived full-time-equivalent impact (>= 0)
	FTEImpact float64 `json:"fte_impact"`

	// BudgetCode is the deterministic budget code (DEPT-COMP-001)
	BudgetCode string `json:"budget_code"`

	// LineItems are the drivers allocated to this department
	LineItems []CostDriver `json:"line_items"`

	// AllocationDetail is optional model-enriched detail
	AllocationDetail *AllocationDetail `json:"allocation_detail,omitempty"`
}

// CostEstimate is the calibrated cost of one regulation for one company.
// Invariant: the department breakdown sums to the pre-band midpoint totals
// within rounding tolerance.
type CostEstimate struct {
	// ID uniquely identifies this estimate
	ID string `json:"id"`

	// RegulationVersionID identifies the regulation version estimated
	RegulationVersionID string `json:"regulation_version_id"`

	// CustomerID identifies the company
	CustomerID string `json:"customer_id"`

	// OneTimeCostLow is the lower bound of one-time cost
	OneTimeCostLow float64 `json:"one_time_cost_low"`

	// OneTimeCostHigh is the upper bound of one-time cost
	OneTimeCostHigh float64 `json:"one_time_cost_high"`

	// RecurringCostAnnual is the recurring annual midpoint cost
	RecurringCostAnnual float64 `json:"recurring_cost_annual"`

	// CostDrivers are the drivers the estimate was calibrated from
	CostDrivers []CostDriver `json:"cost_drivers"`

	// DepartmentBreakdown allocates the midpoint across departments
	DepartmentBreakdown []DepartmentCostBreakdown `json:"department_breakdown"`

	// EstimationMethod records the extraction path used
	EstimationMethod EstimationMethod `json:"estimation_method"`

	// Confidence is the driver-average confidence (0-1)
	Confidence float64 `json:"confidence"`

	// CreatedAt is when the estimate was produced
	CreatedAt time.Time `json:"created_at"`
}

// OneTimeCostMid returns the midpoint of the one-time band
func (e *CostEstimate) OneTimeCostMid() float64 {
	return (e.OneTimeCostLow + e.OneTimeCostHigh) / 2
}

// ThreeYearTotal returns low/high three-year exposure for this estimate
func (e *CostEstimate) ThreeYearTotal() (low, high float64) {
	low = e.OneTimeCostLow + e.RecurringCostAnnual*3
	high = e.OneTimeCostHigh + e.RecurringCostAnnual*3
	return low, high
}
