// Package api - Request validation
package api

import (
	errs "compliance-cost/internal/errors"
)

// validateEstimateRequest checks the fields the engine cannot default.
// The regulation text itself may be empty; the engine returns an empty
// driver list for it rather than failing.
func validateEstimateRequest(req *EstimateRequest) error {
	if req.RegulationVersionID == "" {
		return errs.Input("regulation_version_id is required")
	}
	if req.CustomerID == "" {
		return errs.Input("customer_id is required")
	}
	if req.Profile.EmployeeCount < 1 {
		return errs.Input("profile.employee_count must be >= 1")
	}
	if req.Profile.GeographicComplexity < 1 {
		return errs.Input("profile.geographic_complexity must be >= 1")
	}
	return nil
}
