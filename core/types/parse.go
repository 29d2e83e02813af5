// Package types - Enum parsing helpers
package types

import (
	"fmt"
	"strings"
)

// ParseDriverCategory parses a driver category string
func ParseDriverCategory(s string) (DriverCategory, error) {
	switch DriverCategory(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryLegalReview:
		return CategoryLegalReview, nil
	case CategorySystemChanges:
		return CategorySystemChanges, nil
	case CategoryTraining:
		return CategoryTraining, nil
	case CategoryConsulting:
		return CategoryConsulting, nil
	case CategoryAudit:
		return CategoryAudit, nil
	case CategoryPersonnel:
		return CategoryPersonnel, nil
	case CategoryInfrastructure:
		return CategoryInfrastructure, nil
	case CategoryOther:
		return CategoryOther, nil
	}
	return "", fmt.Errorf("unknown driver category %q", s)
}

// ParseDepartment parses a department string
func ParseDepartment(s string) (Department, error) {
	switch Department(strings.ToUpper(strings.TrimSpace(s))) {
	case DepartmentLegal:
		return DepartmentLegal, nil
	case DepartmentIT:
		return DepartmentIT, nil
	case DepartmentHR:
		return DepartmentHR, nil
	case DepartmentFinance:
		return DepartmentFinance, nil
	case DepartmentOperations:
		return DepartmentOperations, nil
	case DepartmentCompliance:
		return DepartmentCompliance, nil
	}
	return "", fmt.Errorf("unknown department %q", s)
}

// ParseIndustry parses an industry string
func ParseIndustry(s string) (Industry, error) {
	switch Industry(strings.ToUpper(strings.TrimSpace(s))) {
	case IndustryHealthcare:
		return IndustryHealthcare, nil
	case IndustryFinance:
		return IndustryFinance, nil
	case IndustryManufacturing:
		return IndustryManufacturing, nil
	case IndustryTechnology:
		return IndustryTechnology, nil
	case IndustryRetail:
		return IndustryRetail, nil
	case IndustryOther:
		return IndustryOther, nil
	}
	return "", fmt.Errorf("unknown industry %q", s)
}

// ParseTechMaturity parses a tech maturity string
func ParseTechMaturity(s string) (TechMaturity, error) {
	switch TechMaturity(strings.ToUpper(strings.TrimSpace(s))) {
	case TechMaturityLow:
		return TechMaturityLow, nil
	case TechMaturityMedium:
		return TechMaturityMedium, nil
	case TechMaturityHigh:
		return TechMaturityHigh, nil
	}
	return "", fmt.Errorf("unknown tech maturity %q", s)
}
