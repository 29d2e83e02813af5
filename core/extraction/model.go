// Package extraction - Generative-model driver extraction
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	errs "compliance-cost/internal/errors"

	"compliance-cost/core/types"
)

// ModelClient is the single request/response boundary to a generative
// model. Implementations live in adapters; the engine only sees this.
type ModelClient interface {
	// Complete sends a system instruction plus a user prompt and
	// returns the raw model text
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// maxExcerptLen bounds the regulation excerpt sent to the model
const maxExcerptLen = 1500

const extractionSystemPrompt = "You are a regulatory compliance cost analyst. " +
	"You identify discrete cost drivers in regulation text and respond only with valid JSON."

// buildExtractionPrompt assembles the user prompt for driver extraction
func buildExtractionPrompt(text, title string) string {
	excerpt := text
	if len(excerpt) > maxExcerptLen {
		excerpt = excerpt[:maxExcerptLen]
	}

	return fmt.Sprintf(`Identify the discrete compliance cost drivers in the following regulation.

Regulation: %s

Text:
%s

Respond with a JSON object of this exact shape:
{
  "drivers": [
    {
      "category": "LEGAL_REVIEW|SYSTEM_CHANGES|TRAINING|CONSULTING|AUDIT|PERSONNEL|INFRASTRUCTURE|OTHER",
      "description": "what the requirement is",
      "is_one_time": true,
      "estimated_cost": 30000,
      "confidence": 0.8,
      "department": "LEGAL|IT|HR|FINANCE|OPERATIONS|COMPLIANCE"
    }
  ]
}

Respond ONLY with valid JSON. Do not include any markdown formatting or explanations.`, title, excerpt)
}

// modelDriver is the wire shape of one extracted driver
type modelDriver struct {
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	IsOneTime     bool    `json:"is_one_time"`
	EstimatedCost float64 `json:"estimated_cost"`
	Confidence    float64 `json:"confidence"`
	Department    string  `json:"department"`
}

type driversResponse struct {
	Drivers []modelDriver `json:"drivers"`
}

// stripCodeFences removes Markdown code-fence wrapping from model output
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseDriversResponse parses and validates model output into drivers.
// It rejects instead of repairing: any schema violation fails the whole
// response so the caller falls back to the deterministic path.
func parseDriversResponse(raw string) ([]types.CostDriver, error) {
	var resp driversResponse
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &resp); err != nil {
		return nil, errs.Model("model output is not valid JSON", err)
	}
	if len(resp.Drivers) == 0 {
		return nil, errs.New(errs.TypeModel, "model returned no drivers")
	}

	drivers := make([]types.CostDriver, 0, len(resp.Drivers))
	for i, d := range resp.Drivers {
		category, err := types.ParseDriverCategory(d.Category)
		if err != nil {
			return nil, errs.Model("model driver has invalid category", err)
		}
		department, err := types.ParseDepartment(d.Department)
		if err != nil {
			return nil, errs.Model("model driver has invalid department", err)
		}
		if d.EstimatedCost < 0 {
			return nil, errs.Newf(errs.TypeModel, "model driver %d has negative cost", i)
		}

		confidence := d.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}

		drivers = append(drivers, types.CostDriver{
			ID:            fmt.Sprintf("driver-ai-%d", i+1),
			Category:      category,
			Description:   strings.TrimSpace(d.Description),
			IsOneTime:     d.IsOneTime,
			EstimatedCost: d.EstimatedCost,
			Confidence:    confidence,
			Department:    department,
			Evidence: []types.Evidence{
				{
					Type:          "model_extraction",
					Reference:     strings.TrimSpace(d.Description),
					Confidence:    confidence,
					EstimatedCost: d.EstimatedCost,
				},
			},
		})
	}

	return drivers, nil
}
