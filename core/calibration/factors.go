// Package calibration converts extracted drivers plus a company profile
// into dollar ranges using a multiplicative factor model.
package calibration

import (
	"math"

	"compliance-cost/core/types"
)

// IndustryFactor returns the regulatory-burden multiplier for an
// industry. The switch must stay exhaustive over types.AllIndustries;
// the table test pins every member.
func IndustryFactor(industry types.Industry) float64 {
	switch industry {
	case types.IndustryHealthcare:
		return 1.4
	case types.IndustryFinance:
		return 1.3
	case types.IndustryManufacturing:
		return 1.1
	case types.IndustryTechnology:
		return 1.0
	case types.IndustryRetail:
		return 1.0
	case types.IndustryOther:
		return 1.0
	}
	// Unparsed industries calibrate as OTHER
	return 1.0
}

// SizeFactor returns the sub-linear headcount multiplier,
// (employees/100)^0.7. Economies of scale: doubling headcount raises
// cost by 2^0.7, not 2x. Holds for all positive counts, including
// fractional results below 100 employees.
func SizeFactor(employeeCount int) float64 {
	if employeeCount < 1 {
		employeeCount = 1
	}
	return math.Pow(float64(employeeCount)/100.0, 0.7)
}

// GeoFactor returns the jurisdiction multiplier: each jurisdiction
// beyond the first adds 5%.
func GeoFactor(geographicComplexity int) float64 {
	if geographicComplexity < 1 {
		geographicComplexity = 1
	}
	return 1.0 + float64(geographicComplexity-1)*0.05
}

// TechFactor returns the technology-maturity multiplier. The switch
// must stay exhaustive over types.AllTechMaturities.
func TechFactor(maturity types.TechMaturity) float64 {
	switch maturity {
	case types.TechMaturityLow:
		return 1.2
	case types.TechMaturityMedium:
		return 1.0
	case types.TechMaturityHigh:
		return 0.85
	}
	// Unparsed maturity calibrates as MEDIUM
	return 1.0
}

// Multiplier combines all four profile factors
func Multiplier(profile types.CompanyProfile) float64 {
	return IndustryFactor(profile.Industry) *
		SizeFactor(profile.EmployeeCount) *
		GeoFactor(profile.GeographicComplexity) *
		TechFactor(profile.TechMaturity)
}
