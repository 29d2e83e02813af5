// Package extraction - HCL rule file loading
package extraction

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	errs "compliance-cost/internal/errors"

	"compliance-cost/core/types"
)

// ruleFile is the HCL rule file schema:
//
//	rule "dpia" {
//	  keywords    = ["impact assessment", "dpia"]
//	  category    = "AUDIT"
//	  department  = "COMPLIANCE"
//	  description = "Data protection impact assessment"
//	  one_time    = false
//	  base_cost   = 20000
//	  confidence  = 0.7
//	}
type ruleFile struct {
	Rules []ruleBlock `hcl:"rule,block"`
}

type ruleBlock struct {
	ID          string   `hcl:"id,label"`
	Keywords    []string `hcl:"keywords"`
	Category    string   `hcl:"category"`
	Department  string   `hcl:"department"`
	Description string   `hcl:"description,optional"`
	OneTime     bool     `hcl:"one_time,optional"`
	BaseCost    float64  `hcl:"base_cost"`
	Confidence  float64  `hcl:"confidence,optional"`
}

// LoadRulesFile parses an HCL rule file into a validated rule list
func LoadRulesFile(path string) ([]Rule, error) {
	var f ruleFile
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, errs.Parsing("decoding rules file", err).WithContext("path", path)
	}
	return rulesFromBlocks(f.Rules)
}

// ParseRules parses HCL rule file content held in memory. The filename
// only labels diagnostics and must carry a .hcl suffix.
func ParseRules(filename string, src []byte) ([]Rule, error) {
	var f ruleFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, errs.Parsing("decoding rules", err)
	}
	return rulesFromBlocks(f.Rules)
}

func rulesFromBlocks(blocks []ruleBlock) ([]Rule, error) {
	rules := make([]Rule, 0, len(blocks))
	for _, b := range blocks {
		category, err := types.ParseDriverCategory(b.Category)
		if err != nil {
			return nil, errs.Input(err.Error()).WithContext("rule", b.ID)
		}
		department, err := types.ParseDepartment(b.Department)
		if err != nil {
			return nil, errs.Input(err.Error()).WithContext("rule", b.ID)
		}
		if len(b.Keywords) == 0 {
			return nil, errs.Input("rule has no keywords").WithContext("rule", b.ID)
		}
		if b.BaseCost < 0 {
			return nil, errs.Input("rule base_cost must be >= 0").WithContext("rule", b.ID)
		}

		confidence := b.Confidence
		if confidence <= 0 || confidence > 1 {
			confidence = 0.5
		}

		rules = append(rules, Rule{
			ID:          b.ID,
			Keywords:    b.Keywords,
			Category:    category,
			Description: b.Description,
			Department:  department,
			IsOneTime:   b.OneTime,
			BaseCost:    b.BaseCost,
			Confidence:  confidence,
		})
	}
	return rules, nil
}

// MergeRules overlays loaded rules onto the builtin table. A loaded rule
// whose ID matches a builtin replaces it in place, keeping the builtin
// evaluation order; unmatched loaded rules append after the builtins.
func MergeRules(builtin, loaded []Rule) []Rule {
	merged := make([]Rule, len(builtin))
	copy(merged, builtin)

	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[r.ID] = i
	}

	for _, r := range loaded {
		if i, ok := index[r.ID]; ok {
			merged[i] = r
			continue
		}
		index[r.ID] = len(merged)
		merged = append(merged, r)
	}

	return merged
}
