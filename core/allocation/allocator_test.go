package allocation

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"compliance-cost/core/types"
)

func sampleDrivers() []types.CostDriver {
	return []types.CostDriver{
		{ID: "d1", Category: types.CategorySystemChanges, IsOneTime: true,
			EstimatedCost: 30000, Confidence: 0.8, Department: types.DepartmentIT},
		{ID: "d2", Category: types.CategoryPersonnel, IsOneTime: false,
			EstimatedCost: 60000, Confidence: 0.75, Department: types.DepartmentCompliance},
		{ID: "d3", Category: types.CategoryAudit, IsOneTime: false,
			EstimatedCost: 12000, Confidence: 0.7, Department: types.DepartmentCompliance},
	}
}

// TestAllocate tests the deterministic department split
func TestAllocate(t *testing.T) {
	breakdowns := Allocate(sampleDrivers(), types.CompanyProfile{}, 2.0)

	// Only departments with drivers appear, in fixed order
	if len(breakdowns) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(breakdowns))
	}
	if breakdowns[0].Department != types.DepartmentIT {
		t.Errorf("expected IT first, got %s", breakdowns[0].Department)
	}
	if breakdowns[1].Department != types.DepartmentCompliance {
		t.Errorf("expected COMPLIANCE second, got %s", breakdowns[1].Department)
	}

	it := breakdowns[0]
	if it.OneTimeCost != 60000 || it.RecurringCostAnnual != 0 {
		t.Errorf("IT: expected one-time 60000 / recurring 0, got %.0f / %.0f",
			it.OneTimeCost, it.RecurringCostAnnual)
	}
	if len(it.LineItems) != 1 || it.LineItems[0].ID != "d1" {
		t.Errorf("IT: unexpected line items %+v", it.LineItems)
	}

	compliance := breakdowns[1]
	if compliance.OneTimeCost != 0 || compliance.RecurringCostAnnual != 144000 {
		t.Errorf("COMPLIANCE: expected one-time 0 / recurring 144000, got %.0f / %.0f",
			compliance.OneTimeCost, compliance.RecurringCostAnnual)
	}
}

// TestFTEImpact tests the derived headcount formula and rounding
func TestFTEImpact(t *testing.T) {
	tests := []struct {
		name      string
		oneTime   float64
		recurring float64
		want      float64
	}{
		{"recurring only", 0, 100000, 1.0},
		{"one-time only", 200000, 0, 1.0},
		{"mixed", 100000, 50000, 1.0},
		{"small rounds to 2 decimals", 10000, 5000, 0.1},
		{"zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fteImpact(tt.oneTime, tt.recurring); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("fteImpact(%.0f, %.0f) = %v, want %v", tt.oneTime, tt.recurring, got, tt.want)
			}
		})
	}
}

// TestBudgetCode pins the DEPT-COMP-001 format, including short names
func TestBudgetCode(t *testing.T) {
	tests := []struct {
		dept types.Department
		want string
	}{
		{types.DepartmentLegal, "LEGA-COMP-001"},
		{types.DepartmentIT, "IT-COMP-001"},
		{types.DepartmentHR, "HR-COMP-001"},
		{types.DepartmentFinance, "FINA-COMP-001"},
		{types.DepartmentOperations, "OPER-COMP-001"},
		{types.DepartmentCompliance, "COMP-COMP-001"},
	}
	for _, tt := range tests {
		if got := BudgetCode(tt.dept); got != tt.want {
			t.Errorf("BudgetCode(%s) = %s, want %s", tt.dept, got, tt.want)
		}
	}
}

type fakeModel struct {
	response string
	err      error
}

func (m *fakeModel) Complete(_ context.Context, _, _ string) (string, error) {
	return m.response, m.err
}

// TestEnrichmentAddsDetailOnly verifies enrichment never alters the
// numeric breakdown
func TestEnrichmentAddsDetailOnly(t *testing.T) {
	enricher := NewEnricher(&fakeModel{response: `{"refinements": [
		{"department": "IT", "tasks": ["build portal"], "role_split": {"engineer": 0.5},
		 "risk_factors": ["vendor lead time"], "sequencing": "portal first"}
	]}`}, 1)

	base := Allocate(sampleDrivers(), types.CompanyProfile{}, 2.0)
	enriched := enricher.AllocateWithEnrichment(context.Background(), sampleDrivers(), types.CompanyProfile{}, 2.0)

	if len(enriched) != len(base) {
		t.Fatalf("enrichment changed breakdown length: %d vs %d", len(enriched), len(base))
	}
	for i := range base {
		if enriched[i].OneTimeCost != base[i].OneTimeCost ||
			enriched[i].RecurringCostAnnual != base[i].RecurringCostAnnual ||
			enriched[i].FTEImpact != base[i].FTEImpact ||
			enriched[i].BudgetCode != base[i].BudgetCode {
			t.Errorf("department %s: numeric fields changed", base[i].Department)
		}
	}

	if enriched[0].AllocationDetail == nil {
		t.Fatal("expected IT allocation detail")
	}
	if enriched[0].AllocationDetail.Tasks[0] != "build portal" {
		t.Errorf("unexpected tasks %v", enriched[0].AllocationDetail.Tasks)
	}
	if enriched[1].AllocationDetail != nil {
		t.Error("COMPLIANCE got detail the model never returned")
	}
}

// TestEnrichmentFailureReturnsBase verifies every failure path is
// side-effect-free
func TestEnrichmentFailureReturnsBase(t *testing.T) {
	tests := []struct {
		name  string
		model *fakeModel
	}{
		{"transport error", &fakeModel{err: errors.New("unreachable")}},
		{"malformed json", &fakeModel{response: "oops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enricher := NewEnricher(tt.model, 2)
			enricher.sleep = func(time.Duration) {}

			base := Allocate(sampleDrivers(), types.CompanyProfile{}, 1.5)
			got := enricher.AllocateWithEnrichment(context.Background(), sampleDrivers(), types.CompanyProfile{}, 1.5)

			if !reflect.DeepEqual(got, base) {
				t.Error("failed enrichment did not return the unmodified base breakdown")
			}
		})
	}
}

// TestEnrichmentSkipsUnknownDepartments verifies unknown keys are
// dropped rather than failing the response
func TestEnrichmentSkipsUnknownDepartments(t *testing.T) {
	enricher := NewEnricher(&fakeModel{response: `{"refinements": [
		{"department": "MARKETING", "tasks": ["irrelevant"]},
		{"department": "COMPLIANCE", "sequencing": "hire first"}
	]}`}, 1)

	enriched := enricher.AllocateWithEnrichment(context.Background(), sampleDrivers(), types.CompanyProfile{}, 1.0)
	if enriched[0].AllocationDetail != nil {
		t.Error("IT should have no detail")
	}
	if enriched[1].AllocationDetail == nil || enriched[1].AllocationDetail.Sequencing != "hire first" {
		t.Error("COMPLIANCE detail missing")
	}
}
