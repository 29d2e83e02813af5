package engine

import (
	"context"
	"testing"

	"compliance-cost/core/cache"
	"compliance-cost/core/extraction"
	"compliance-cost/core/types"
)

const regulationText = `Organizations must deploy a consent management portal.
A data protection officer must be appointed.
All staff handling personal data must complete training.`

func testEngine() *Engine {
	return New(extraction.New(cache.NewMemory()), nil)
}

// TestEstimatePipeline runs the full deterministic pipeline end to end
func TestEstimatePipeline(t *testing.T) {
	e := testEngine()

	report := e.Estimate(context.Background(), EstimateInput{
		RegulationText:      regulationText,
		RegulationTitle:     "Privacy Regulation",
		RegulationVersionID: "priv-v1",
		CustomerID:          "acme",
		Profile: types.CompanyProfile{
			Industry:             types.IndustryTechnology,
			EmployeeCount:        200,
			GeographicComplexity: 3,
			TechMaturity:         types.TechMaturityMedium,
		},
	})

	estimate := report.Estimate
	if estimate == nil {
		t.Fatal("missing estimate")
	}
	if estimate.ID == "" {
		t.Error("estimate should carry a generated ID")
	}
	if estimate.RegulationVersionID != "priv-v1" || estimate.CustomerID != "acme" {
		t.Errorf("identity not carried: %+v", estimate)
	}
	if estimate.EstimationMethod != types.MethodDeterministic {
		t.Errorf("method = %s, want DETERMINISTIC", estimate.EstimationMethod)
	}
	if len(estimate.CostDrivers) != 3 {
		t.Fatalf("expected 3 drivers, got %d", len(estimate.CostDrivers))
	}
	if !(estimate.OneTimeCostLow < estimate.OneTimeCostHigh) {
		t.Errorf("bad band [%.0f, %.0f]", estimate.OneTimeCostLow, estimate.OneTimeCostHigh)
	}
	if estimate.RecurringCostAnnual <= 0 {
		t.Error("officer and training drivers should produce recurring cost")
	}
	if len(estimate.DepartmentBreakdown) == 0 {
		t.Error("missing department breakdown")
	}

	if report.Scenarios.Recommended != types.ScenarioStandard {
		t.Errorf("recommended = %s, want standard", report.Scenarios.Recommended)
	}
	if diff := report.Scenarios.Standard.OneTimeCost - estimate.OneTimeCostMid(); diff > 0.5 || diff < -0.5 {
		t.Error("standard scenario should take the baseline midpoint")
	}
	if len(report.Sensitivity.Factors) != 3 {
		t.Errorf("expected 3 sensitivity factors, got %d", len(report.Sensitivity.Factors))
	}
}

// TestEstimateNormalizesProfile verifies a degenerate profile still
// yields a usable report
func TestEstimateNormalizesProfile(t *testing.T) {
	e := testEngine()

	report := e.Estimate(context.Background(), EstimateInput{
		RegulationText:      regulationText,
		RegulationVersionID: "priv-v1",
		CustomerID:          "acme",
		Profile:             types.CompanyProfile{},
	})

	if report.Estimate.OneTimeCostLow <= 0 {
		t.Error("empty profile should normalize, not zero out the estimate")
	}
}

// TestEstimateEmptyText verifies the no-driver path
func TestEstimateEmptyText(t *testing.T) {
	e := testEngine()

	report := e.Estimate(context.Background(), EstimateInput{
		RegulationVersionID: "priv-v1",
		CustomerID:          "acme",
		Profile:             types.CompanyProfile{EmployeeCount: 50, GeographicComplexity: 1},
	})

	if len(report.Estimate.CostDrivers) != 0 {
		t.Errorf("expected no drivers, got %d", len(report.Estimate.CostDrivers))
	}
	if report.Estimate.OneTimeCostLow != 0 || report.Estimate.RecurringCostAnnual != 0 {
		t.Error("no drivers should mean zero cost")
	}
	if report.Scenarios.Standard.ThreeYearTotal != 0 {
		t.Error("scenarios over an empty estimate should be zero")
	}
}

// TestPortfolioReport verifies aggregation plus forecast wiring
func TestPortfolioReport(t *testing.T) {
	e := testEngine()

	estimates := []*types.CostEstimate{
		{ID: "e1", OneTimeCostLow: 80000, OneTimeCostHigh: 120000, RecurringCostAnnual: 40000, Confidence: 0.8},
		{ID: "e2", OneTimeCostLow: 40000, OneTimeCostHigh: 60000, RecurringCostAnnual: 20000, Confidence: 0.6},
	}

	report := e.Portfolio(estimates, 2)
	if report.Trend.EstimateCount != 2 {
		t.Errorf("estimate count = %d", report.Trend.EstimateCount)
	}
	if len(report.Forecast.Years) != 2 {
		t.Errorf("forecast years = %d, want 2", len(report.Forecast.Years))
	}
	if report.Forecast.Years[0].OneTimeCost != 150000 {
		t.Errorf("year 1 one-time = %.0f, want 150000", report.Forecast.Years[0].OneTimeCost)
	}
}
