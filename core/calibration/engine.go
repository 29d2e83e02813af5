// Package calibration - Calibration engine
package calibration

import (
	"math"
	"time"

	"github.com/google/uuid"

	"compliance-cost/core/allocation"
	"compliance-cost/core/types"
)

// defaultConfidence is used when a driver list is empty, so an empty
// extraction still yields a usable band instead of NaN.
const defaultConfidence = 0.7

// Calibrate converts a driver list plus a company profile into dollar
// ranges. It fills cost fields only; the caller attaches regulation and
// customer identity plus the estimation method.
//
// Invariant: the department breakdown sums to the pre-band midpoint
// totals within rounding tolerance, because both sides scale by the
// same multiplier.
func Calibrate(drivers []types.CostDriver, profile types.CompanyProfile) *types.CostEstimate {
	profile = profile.Normalize()

	var baseOneTime, baseRecurring float64
	for _, d := range drivers {
		if d.IsOneTime {
			baseOneTime += d.EstimatedCost
		} else {
			baseRecurring += d.EstimatedCost
		}
	}

	multiplier := Multiplier(profile)
	midOneTime := baseOneTime * multiplier
	recurring := baseRecurring * multiplier

	confidence := AverageConfidence(drivers)
	spread := ConfidenceSpread(confidence)

	return &types.CostEstimate{
		ID:                  uuid.NewString(),
		OneTimeCostLow:      math.Round(midOneTime * (1 - spread)),
		OneTimeCostHigh:     math.Round(midOneTime * (1 + spread)),
		RecurringCostAnnual: math.Round(recurring),
		CostDrivers:         drivers,
		DepartmentBreakdown: allocation.Allocate(drivers, profile, multiplier),
		EstimationMethod:    types.MethodDeterministic,
		Confidence:          confidence,
		CreatedAt:           time.Now().UTC(),
	}
}

// AverageConfidence returns the arithmetic mean of driver confidences,
// or the default when the list is empty.
func AverageConfidence(drivers []types.CostDriver) float64 {
	if len(drivers) == 0 {
		return defaultConfidence
	}
	var sum float64
	for _, d := range drivers {
		sum += d.Confidence
	}
	return sum / float64(len(drivers))
}

// ConfidenceSpread maps average confidence to the symmetric band width:
// 0.2 x (1 - confidence x 0.3). Higher confidence narrows the band, but
// never below 0.14 at confidence 1.0 nor above 0.2 at confidence 0.
func ConfidenceSpread(confidence float64) float64 {
	return 0.2 * (1 - confidence*0.3)
}
