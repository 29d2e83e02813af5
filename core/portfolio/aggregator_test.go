package portfolio

import (
	"fmt"
	"math"
	"testing"

	"compliance-cost/core/types"
)

func estimateFixture(id string, oneTimeLow, oneTimeHigh, recurring, confidence float64) *types.CostEstimate {
	return &types.CostEstimate{
		ID:                  id,
		RegulationVersionID: "reg-" + id,
		OneTimeCostLow:      oneTimeLow,
		OneTimeCostHigh:     oneTimeHigh,
		RecurringCostAnnual: recurring,
		Confidence:          confidence,
		DepartmentBreakdown: []types.DepartmentCostBreakdown{
			{Department: types.DepartmentIT, OneTimeCost: (oneTimeLow + oneTimeHigh) / 2},
			{Department: types.DepartmentCompliance, RecurringCostAnnual: recurring},
		},
		CostDrivers: []types.CostDriver{
			{ID: id + "-d1", EstimatedCost: oneTimeLow, Department: types.DepartmentIT},
		},
	}
}

// TestAggregateEmpty verifies the all-zero trend for an empty portfolio
func TestAggregateEmpty(t *testing.T) {
	trend := Aggregate(nil)

	if trend.EstimateCount != 0 {
		t.Errorf("estimate count = %d, want 0", trend.EstimateCount)
	}
	if trend.TotalOneTimeLow != 0 || trend.TotalOneTimeHigh != 0 || trend.TotalRecurringAnnual != 0 {
		t.Error("empty portfolio should have zero totals")
	}
	if len(trend.ByRiskLevel) != len(types.AllRiskLevels) {
		t.Errorf("expected all %d risk buckets present, got %d", len(types.AllRiskLevels), len(trend.ByRiskLevel))
	}
	for level, v := range trend.ByRiskLevel {
		if v != 0 {
			t.Errorf("bucket %s = %.0f, want 0", level, v)
		}
	}
	if trend.TopDrivers == nil || len(trend.TopDrivers) != 0 {
		t.Error("top drivers should be an empty slice")
	}
	if trend.ByDepartment == nil || len(trend.ByDepartment) != 0 {
		t.Error("department totals should be an empty slice")
	}
}

// TestAggregateTotals verifies summation and three-year exposure
func TestAggregateTotals(t *testing.T) {
	trend := Aggregate([]*types.CostEstimate{
		estimateFixture("e1", 80000, 120000, 40000, 0.8),
		estimateFixture("e2", 40000, 60000, 20000, 0.6),
	})

	if trend.EstimateCount != 2 {
		t.Errorf("estimate count = %d, want 2", trend.EstimateCount)
	}
	if trend.TotalOneTimeLow != 120000 || trend.TotalOneTimeHigh != 180000 {
		t.Errorf("one-time totals = %.0f/%.0f, want 120000/180000",
			trend.TotalOneTimeLow, trend.TotalOneTimeHigh)
	}
	if trend.TotalRecurringAnnual != 60000 {
		t.Errorf("recurring total = %.0f, want 60000", trend.TotalRecurringAnnual)
	}
	if trend.ThreeYearExposureLow != 120000+60000*3 {
		t.Errorf("3yr low exposure = %.0f, want 300000", trend.ThreeYearExposureLow)
	}
	if trend.ThreeYearExposureHigh != 180000+60000*3 {
		t.Errorf("3yr high exposure = %.0f, want 360000", trend.ThreeYearExposureHigh)
	}
	if math.Abs(trend.AverageConfidence-0.7) > 1e-9 {
		t.Errorf("average confidence = %v, want 0.7", trend.AverageConfidence)
	}

	// Departments in fixed order, summed across estimates
	if len(trend.ByDepartment) != 2 {
		t.Fatalf("expected 2 department totals, got %d", len(trend.ByDepartment))
	}
	if trend.ByDepartment[0].Department != types.DepartmentIT || trend.ByDepartment[0].OneTimeCost != 150000 {
		t.Errorf("IT total wrong: %+v", trend.ByDepartment[0])
	}
	if trend.ByDepartment[1].Department != types.DepartmentCompliance || trend.ByDepartment[1].RecurringCostAnnual != 60000 {
		t.Errorf("COMPLIANCE total wrong: %+v", trend.ByDepartment[1])
	}
}

// TestClassifyEstimateRisk pins the confidence bucket thresholds
func TestClassifyEstimateRisk(t *testing.T) {
	tests := []struct {
		confidence float64
		want       types.RiskLevel
	}{
		{0.95, types.RiskMinimal},
		{0.85, types.RiskMinimal},
		{0.84, types.RiskLow},
		{0.70, types.RiskLow},
		{0.69, types.RiskMedium},
		{0.50, types.RiskMedium},
		{0.49, types.RiskHigh},
		{0, types.RiskHigh},
	}
	for _, tt := range tests {
		e := &types.CostEstimate{Confidence: tt.confidence}
		if got := ClassifyEstimateRisk(e); got != tt.want {
			t.Errorf("confidence %.2f: got %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

// TestRiskBuckets verifies low-bound exposure lands in the right bucket
func TestRiskBuckets(t *testing.T) {
	trend := Aggregate([]*types.CostEstimate{
		estimateFixture("e1", 80000, 120000, 40000, 0.9),  // MINIMAL
		estimateFixture("e2", 40000, 60000, 20000, 0.4),   // HIGH
	})

	if got := trend.ByRiskLevel[types.RiskMinimal]; got != 80000+40000*3 {
		t.Errorf("MINIMAL bucket = %.0f, want 200000", got)
	}
	if got := trend.ByRiskLevel[types.RiskHigh]; got != 40000+20000*3 {
		t.Errorf("HIGH bucket = %.0f, want 100000", got)
	}
	if got := trend.ByRiskLevel[types.RiskLow]; got != 0 {
		t.Errorf("LOW bucket = %.0f, want 0", got)
	}
}

// TestTopDriversRankingAndTruncation verifies descending cost order with
// ID tie-break and the cap at ten entries
func TestTopDriversRankingAndTruncation(t *testing.T) {
	var estimates []*types.CostEstimate
	for i := 0; i < 12; i++ {
		e := estimateFixture(fmt.Sprintf("e%02d", i), 10000, 20000, 5000, 0.8)
		e.CostDrivers = []types.CostDriver{
			{ID: fmt.Sprintf("d%02d", i), EstimatedCost: float64(1000 * (i + 1))},
		}
		estimates = append(estimates, e)
	}
	// Tie on cost with the most expensive driver; lower ID wins
	estimates[0].CostDrivers[0].EstimatedCost = 12000
	estimates[0].CostDrivers[0].ID = "d00"

	trend := Aggregate(estimates)

	if len(trend.TopDrivers) != topDriverLimit {
		t.Fatalf("expected %d top drivers, got %d", topDriverLimit, len(trend.TopDrivers))
	}
	if trend.TopDrivers[0].Driver.ID != "d00" {
		t.Errorf("tie-break failed: first driver is %s", trend.TopDrivers[0].Driver.ID)
	}
	if trend.TopDrivers[1].Driver.ID != "d11" {
		t.Errorf("second driver is %s, want d11", trend.TopDrivers[1].Driver.ID)
	}
	for i := 1; i < len(trend.TopDrivers); i++ {
		if trend.TopDrivers[i].Driver.EstimatedCost > trend.TopDrivers[i-1].Driver.EstimatedCost {
			t.Fatal("top drivers are not sorted by descending cost")
		}
	}
}
