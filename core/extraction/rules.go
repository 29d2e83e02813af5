// Package extraction turns free-text regulation content into discrete,
// typed cost drivers. The keyword rule engine is the primary path; the
// generative-model path is an optional enhancement that always degrades
// back to the rules on failure.
package extraction

import (
	"fmt"
	"strings"

	"compliance-cost/core/types"
)

// Rule is one deterministic keyword rule. A rule that matches appends
// exactly one driver; a rule with no match contributes nothing.
type Rule struct {
	// ID identifies the rule
	ID string

	// Keywords are the phrases tested against the lower-cased text;
	// any single match fires the rule
	Keywords []string

	// Category is the driver category the rule produces
	Category types.DriverCategory

	// Description is the produced driver description
	Description string

	// Department is the owning department
	Department types.Department

	// IsOneTime marks implementation cost; false means recurring annual
	IsOneTime bool

	// BaseCost is the fixed uncalibrated cost
	BaseCost float64

	// Confidence is the fixed extraction confidence
	Confidence float64
}

// BuiltinRules returns the compiled-in rule table. Rule order is fixed:
// driver IDs are numbered by match order, so reordering changes output
// identity.
func BuiltinRules() []Rule {
	return []Rule{
		{
			ID:          "system-changes",
			Keywords:    []string{"portal", "system", "setup"},
			Category:    types.CategorySystemChanges,
			Description: "System changes for reporting portal or technical setup",
			Department:  types.DepartmentIT,
			IsOneTime:   true,
			BaseCost:    30000,
			Confidence:  0.80,
		},
		{
			ID:          "personnel",
			Keywords:    []string{"officer", "dpo"},
			Category:    types.CategoryPersonnel,
			Description: "Designated compliance officer or data protection officer",
			Department:  types.DepartmentCompliance,
			IsOneTime:   false,
			BaseCost:    60000,
			Confidence:  0.75,
		},
		{
			ID:          "audit",
			Keywords:    []string{"audit", "assessment"},
			Category:    types.CategoryAudit,
			Description: "Periodic audit or conformity assessment",
			Department:  types.DepartmentCompliance,
			IsOneTime:   false,
			BaseCost:    12000,
			Confidence:  0.70,
		},
		{
			ID:          "training",
			Keywords:    []string{"training"},
			Category:    types.CategoryTraining,
			Description: "Employee compliance training program",
			Department:  types.DepartmentHR,
			IsOneTime:   false,
			BaseCost:    8000,
			Confidence:  0.80,
		},
		{
			ID:          "legal-review",
			Keywords:    []string{"legal", "policy review"},
			Category:    types.CategoryLegalReview,
			Description: "Legal review and policy updates",
			Department:  types.DepartmentLegal,
			IsOneTime:   true,
			BaseCost:    5000,
			Confidence:  0.85,
		},
		{
			ID:          "fees",
			Keywords:    []string{"fee", "penalty", "annual"},
			Category:    types.CategoryOther,
			Description: "Regulatory fees and recurring charges",
			Department:  types.DepartmentFinance,
			IsOneTime:   false,
			BaseCost:    10000,
			Confidence:  0.60,
		},
	}
}

// EvaluateRules runs the ordered rule table against regulation text and
// returns the drivers for every matched rule, numbered in match order.
func EvaluateRules(rules []Rule, text string) []types.CostDriver {
	if strings.TrimSpace(text) == "" {
		return []types.CostDriver{}
	}

	lower := strings.ToLower(text)
	drivers := make([]types.CostDriver, 0, len(rules))

	for _, rule := range rules {
		matched := ""
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				matched = kw
				break
			}
		}
		if matched == "" {
			continue
		}

		drivers = append(drivers, types.CostDriver{
			ID:            fmt.Sprintf("driver-det-%d", len(drivers)+1),
			Category:      rule.Category,
			Description:   rule.Description,
			IsOneTime:     rule.IsOneTime,
			EstimatedCost: rule.BaseCost,
			Confidence:    rule.Confidence,
			Department:    rule.Department,
			Evidence: []types.Evidence{
				{
					Type:          "keyword_match",
					Reference:     matched,
					Confidence:    rule.Confidence,
					EstimatedCost: rule.BaseCost,
				},
			},
		})
	}

	return drivers
}
