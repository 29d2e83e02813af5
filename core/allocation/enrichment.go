// Package allocation - Model enrichment of department breakdowns
package allocation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"compliance-cost/core/extraction"
	"compliance-cost/core/types"
	"compliance-cost/internal/logging"
)

const enrichmentSystemPrompt = "You are a compliance program planner. " +
	"You enrich department cost allocations with task and staffing detail and respond only with valid JSON."

// Enricher adds model-generated task/role detail to a numeric
// department breakdown. It never alters numeric fields and returns the
// unmodified base breakdown on any failure.
type Enricher struct {
	model   extraction.ModelClient
	retries int
	backoff time.Duration
	log     *zap.Logger

	sleep func(time.Duration)
}

// NewEnricher creates an enricher. retryAttempts <= 0 uses 3.
func NewEnricher(model extraction.ModelClient, retryAttempts int) *Enricher {
	if retryAttempts <= 0 {
		retryAttempts = 3
	}
	return &Enricher{
		model:   model,
		retries: retryAttempts,
		backoff: time.Second,
		log:     logging.Named("allocation"),
		sleep:   time.Sleep,
	}
}

// AllocateWithEnrichment computes the deterministic allocation and then
// attaches model detail per department. The numeric breakdown is taken
// as given; this pass is purely additive and side-effect-free on
// failure.
func (e *Enricher) AllocateWithEnrichment(ctx context.Context, drivers []types.CostDriver, profile types.CompanyProfile, multiplier float64) []types.DepartmentCostBreakdown {
	base := Allocate(drivers, profile, multiplier)
	if e == nil || e.model == nil || len(base) == 0 {
		return base
	}

	details, err := e.refine(ctx, base)
	if err != nil {
		e.log.Warn("allocation enrichment failed, returning base breakdown", zap.Error(err))
		return base
	}

	enriched := make([]types.DepartmentCostBreakdown, len(base))
	copy(enriched, base)
	for i := range enriched {
		if detail, ok := details[enriched[i].Department]; ok {
			enriched[i].AllocationDetail = detail
		}
	}
	return enriched
}

// refinement is the wire shape of one department's enrichment
type refinement struct {
	Department  string             `json:"department"`
	Tasks       []string           `json:"tasks,omitempty"`
	RoleSplit   map[string]float64 `json:"role_split,omitempty"`
	RiskFactors []string           `json:"risk_factors,omitempty"`
	Sequencing  string             `json:"sequencing,omitempty"`
}

type refinementsResponse struct {
	Refinements []refinement `json:"refinements"`
}

func (e *Enricher) refine(ctx context.Context, base []types.DepartmentCostBreakdown) (map[types.Department]*types.AllocationDetail, error) {
	prompt, err := buildEnrichmentPrompt(base)
	if err != nil {
		return nil, err
	}

	var raw string
	var lastErr error
	delay := e.backoff
	for attempt := 1; attempt <= e.retries; attempt++ {
		raw, lastErr = e.model.Complete(ctx, enrichmentSystemPrompt, prompt)
		if lastErr == nil {
			break
		}
		e.log.Warn("enrichment request failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.retries),
			zap.Error(lastErr))
		if attempt < e.retries {
			e.sleep(delay)
			delay *= 2
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	return parseRefinements(raw)
}

func buildEnrichmentPrompt(base []types.DepartmentCostBreakdown) (string, error) {
	type deptSummary struct {
		Department          types.Department `json:"department"`
		OneTimeCost         float64          `json:"one_time_cost"`
		RecurringCostAnnual float64          `json:"recurring_cost_annual"`
		FTEImpact           float64          `json:"fte_impact"`
		Drivers             []string         `json:"drivers"`
	}

	summaries := make([]deptSummary, 0, len(base))
	for _, b := range base {
		s := deptSummary{
			Department:          b.Department,
			OneTimeCost:         b.OneTimeCost,
			RecurringCostAnnual: b.RecurringCostAnnual,
			FTEImpact:           b.FTEImpact,
		}
		for _, item := range b.LineItems {
			s.Drivers = append(s.Drivers, item.Description)
		}
		summaries = append(summaries, s)
	}

	encoded, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`The following department cost allocation is final. Do not change any numbers.
For each department, suggest concrete tasks, an FTE role split, delivery risk factors, and sequencing.

Allocation:
%s

Respond with a JSON object of this exact shape:
{
  "refinements": [
    {
      "department": "LEGAL|IT|HR|FINANCE|OPERATIONS|COMPLIANCE",
      "tasks": ["task"],
      "role_split": {"role": 0.5},
      "risk_factors": ["risk"],
      "sequencing": "what to do first"
    }
  ]
}

Respond ONLY with valid JSON. Do not include any markdown formatting or explanations.`, string(encoded)), nil
}

// parseRefinements validates model output; unknown department keys are
// skipped rather than failing the whole response.
func parseRefinements(raw string) (map[types.Department]*types.AllocationDetail, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var resp refinementsResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &resp); err != nil {
		return nil, err
	}

	details := make(map[types.Department]*types.AllocationDetail, len(resp.Refinements))
	for _, r := range resp.Refinements {
		dept, err := types.ParseDepartment(r.Department)
		if err != nil {
			continue
		}
		details[dept] = &types.AllocationDetail{
			Tasks:       r.Tasks,
			RoleSplit:   r.RoleSplit,
			RiskFactors: r.RiskFactors,
			Sequencing:  r.Sequencing,
		}
	}
	return details, nil
}
