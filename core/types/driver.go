// Package types - Cost driver types
package types

// DriverCategory classifies a cost driver
type DriverCategory string

const (
	CategoryLegalReview    DriverCategory = "LEGAL_REVIEW"
	CategorySystemChanges  DriverCategory = "SYSTEM_CHANGES"
	CategoryTraining       DriverCategory = "TRAINING"
	CategoryConsulting     DriverCategory = "CONSULTING"
	CategoryAudit          DriverCategory = "AUDIT"
	CategoryPersonnel      DriverCategory = "PERSONNEL"
	CategoryInfrastructure DriverCategory = "INFRASTRUCTURE"
	CategoryOther          DriverCategory = "OTHER"
)

// String returns the string representation
func (c DriverCategory) String() string {
	return string(c)
}

// Department identifies an organizational unit that absorbs cost
type Department string

const (
	DepartmentLegal      Department = "LEGAL"
	DepartmentIT         Department = "IT"
	DepartmentHR         Department = "HR"
	DepartmentFinance    Department = "FINANCE"
	DepartmentOperations Department = "OPERATIONS"
	DepartmentCompliance Department = "COMPLIANCE"
)

// String returns the string representation
func (d Department) String() string {
	return string(d)
}

// AllDepartments lists every department in the fixed allocation order.
// The allocator iterates this list; changing the order changes output
// ordering, so keep it stable.
var AllDepartments = []Department{
	DepartmentLegal,
	DepartmentIT,
	DepartmentHR,
	DepartmentFinance,
	DepartmentOperations,
	DepartmentCompliance,
}

// Evidence links a driver back to the regulation text that produced it
type Evidence struct {
	// Type is the evidence kind (e.g. "keyword_match", "model_extraction")
	Type string `json:"type"`

	// Reference is the matched phrase or excerpt
	Reference string `json:"reference"`

	// Confidence is the evidence-level confidence (0-1)
	Confidence float64 `json:"confidence"`

	// EstimatedCost is the cost attributed by this evidence, if any
	EstimatedCost float64 `json:"estimated_cost,omitempty"`
}

// DepartmentAlternative records a plausible alternative owning department
type DepartmentAlternative struct {
	// Department is the alternative owner
	Department Department `json:"department"`

	// Probability is the likelihood this department owns the driver (0-1)
	Probability float64 `json:"probability"`

	// Reasoning explains the alternative, if known
	Reasoning string `json:"reasoning,omitempty"`
}

// CostDriver is a single discrete compliance requirement with a dollar
// estimate. Drivers are immutable once created.
type CostDriver struct {
	// ID uniquely identifies the driver within an extraction
	ID string `json:"id"`

	// Category classifies the driver
	Category DriverCategory `json:"category"`

	// Description is a human-readable summary of the requirement
	Description string `json:"description"`

	// IsOneTime marks implementation costs; false means recurring annual
	IsOneTime bool `json:"is_one_time"`

	// EstimatedCost is the uncalibrated base cost (>= 0)
	EstimatedCost float64 `json:"estimated_cost"`

	// Confidence is the extraction confidence (0-1)
	Confidence float64 `json:"confidence"`

	// Department is the organizational unit that absorbs the cost
	Department Department `json:"department"`

	// Evidence links back to the source text
	Evidence []Evidence `json:"evidence,omitempty"`

	// DepartmentAlternatives lists other plausible owners
	DepartmentAlternatives []DepartmentAlternative `json:"department_alternatives,omitempty"`
}
