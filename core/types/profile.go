// Package types defines the shared domain types for compliance cost
// estimation. NO estimation logic belongs here.
package types

// Industry classifies the company's primary business sector
type Industry string

const (
	IndustryHealthcare    Industry = "HEALTHCARE"
	IndustryFinance       Industry = "FINANCE"
	IndustryManufacturing Industry = "MANUFACTURING"
	IndustryTechnology    Industry = "TECHNOLOGY"
	IndustryRetail        Industry = "RETAIL"
	IndustryOther         Industry = "OTHER"
)

// String returns the string representation
func (i Industry) String() string {
	return string(i)
}

// AllIndustries lists every industry in declaration order.
// Factor tables are tested for exhaustiveness against this list.
var AllIndustries = []Industry{
	IndustryHealthcare,
	IndustryFinance,
	IndustryManufacturing,
	IndustryTechnology,
	IndustryRetail,
	IndustryOther,
}

// TechMaturity grades the company's technology estate
type TechMaturity string

const (
	TechMaturityLow    TechMaturity = "LOW"
	TechMaturityMedium TechMaturity = "MEDIUM"
	TechMaturityHigh   TechMaturity = "HIGH"
)

// String returns the string representation
func (m TechMaturity) String() string {
	return string(m)
}

// AllTechMaturities lists every maturity level in declaration order
var AllTechMaturities = []TechMaturity{
	TechMaturityLow,
	TechMaturityMedium,
	TechMaturityHigh,
}

// RiskAppetite expresses how much implementation risk the company accepts
type RiskAppetite string

const (
	RiskAppetiteMinimal RiskAppetite = "MINIMAL"
	RiskAppetiteLow     RiskAppetite = "LOW"
	RiskAppetiteMedium  RiskAppetite = "MEDIUM"
	RiskAppetiteHigh    RiskAppetite = "HIGH"
)

// String returns the string representation
func (r RiskAppetite) String() string {
	return string(r)
}

// CompanyProfile describes the company an estimate is calibrated for.
// Profiles are immutable inputs supplied per estimation call.
type CompanyProfile struct {
	// Industry is the primary business sector
	Industry Industry `json:"industry" yaml:"industry"`

	// EmployeeCount is the total headcount (must be > 0)
	EmployeeCount int `json:"employee_count" yaml:"employee_count"`

	// Revenue is annual revenue in whole currency units (optional)
	Revenue float64 `json:"revenue,omitempty" yaml:"revenue,omitempty"`

	// GeographicComplexity counts distinct jurisdictions (>= 1)
	GeographicComplexity int `json:"geographic_complexity" yaml:"geographic_complexity"`

	// TechMaturity grades the technology estate
	TechMaturity TechMaturity `json:"tech_maturity" yaml:"tech_maturity"`

	// RiskAppetite is the stated implementation risk tolerance (optional)
	RiskAppetite RiskAppetite `json:"risk_appetite,omitempty" yaml:"risk_appetite,omitempty"`
}

// Normalize clamps out-of-range profile fields to their minimums so
// downstream factor math never divides by zero or sees negatives.
func (p CompanyProfile) Normalize() CompanyProfile {
	if p.EmployeeCount < 1 {
		p.EmployeeCount = 1
	}
	if p.GeographicComplexity < 1 {
		p.GeographicComplexity = 1
	}
	if p.TechMaturity == "" {
		p.TechMaturity = TechMaturityMedium
	}
	if p.Industry == "" {
		p.Industry = IndustryOther
	}
	return p
}
