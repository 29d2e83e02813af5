// Package types - Portfolio aggregation and forecast types
package types

// DepartmentTotal is one department's accumulated cost across a portfolio
type DepartmentTotal struct {
	// Department is the organizational unit
	Department Department `json:"department"`

	// OneTimeCost is the summed one-time cost
	OneTimeCost float64 `json:"one_time_cost"`

	// RecurringCostAnnual is the summed recurring annual cost
	RecurringCostAnnual float64 `json:"recurring_cost_annual"`
}

// RankedDriver is a driver with its source estimate for ranking
type RankedDriver struct {
	// Driver is the cost driver
	Driver CostDriver `json:"driver"`

	// EstimateID is the estimate the driver came from
	EstimateID string `json:"estimate_id"`

	// RegulationVersionID identifies the source regulation
	RegulationVersionID string `json:"regulation_version_id"`
}

// PortfolioTrend aggregates totals across a customer's estimates.
// Recomputed fresh on every call; never persisted state.
type PortfolioTrend struct {
	// EstimateCount is the number of aggregated estimates
	EstimateCount int `json:"estimate_count"`

	// TotalOneTimeLow is the summed low one-time bound
	TotalOneTimeLow float64 `json:"total_one_time_low"`

	// TotalOneTimeHigh is the summed high one-time bound
	TotalOneTimeHigh float64 `json:"total_one_time_high"`

	// TotalRecurringAnnual is the summed recurring annual cost
	TotalRecurringAnnual float64 `json:"total_recurring_annual"`

	// ThreeYearExposureLow is one-time low + recurring x 3
	ThreeYearExposureLow float64 `json:"three_year_exposure_low"`

	// ThreeYearExposureHigh is one-time high + recurring x 3
	ThreeYearExposureHigh float64 `json:"three_year_exposure_high"`

	// AverageConfidence is the mean estimate confidence
	AverageConfidence float64 `json:"average_confidence"`

	// ByDepartment accumulates costs per department, in fixed
	// department order
	ByDepartment []DepartmentTotal `json:"by_department"`

	// ByRiskLevel accumulates low-bound three-year exposure per risk
	// bucket, keyed over all four levels (zero-valued buckets included)
	ByRiskLevel map[RiskLevel]float64 `json:"by_risk_level"`

	// TopDrivers are the ten largest drivers by estimated cost
	TopDrivers []RankedDriver `json:"top_drivers"`
}

// ForecastYear is one projected year of portfolio cost
type ForecastYear struct {
	// Year is the 1-based projection year
	Year int `json:"year"`

	// OneTimeCost is the one-time cost landing in this year
	OneTimeCost float64 `json:"one_time_cost"`

	// RecurringCost is the inflation-adjusted recurring cost
	RecurringCost float64 `json:"recurring_cost"`

	// TotalCost is one-time + recurring for this year
	TotalCost float64 `json:"total_cost"`

	// CumulativeCost is the running total through this year
	CumulativeCost float64 `json:"cumulative_cost"`
}

// PortfolioForecast projects a portfolio trend forward N years.
// Derived purely from the trend; stateless.
type PortfolioForecast struct {
	// Years are the projected years in order
	Years []ForecastYear `json:"years"`

	// TotalCost is the cumulative cost over the whole horizon
	TotalCost float64 `json:"total_cost"`

	// InflationRate is the fixed annual inflation assumption
	InflationRate float64 `json:"inflation_rate"`

	// RiskFactors are advisory free-text flags, not errors
	RiskFactors []string `json:"risk_factors,omitempty"`
}
