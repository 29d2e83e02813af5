// Package types - Implementation scenario types
package types

// RiskLevel classifies scenario or portfolio risk
type RiskLevel string

const (
	RiskMinimal RiskLevel = "MINIMAL"
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
)

// String returns the string representation
func (r RiskLevel) String() string {
	return string(r)
}

// AllRiskLevels lists every risk level from least to most severe
var AllRiskLevels = []RiskLevel{
	RiskMinimal,
	RiskLow,
	RiskMedium,
	RiskHigh,
}

// ScenarioKey names one of the four fixed implementation strategies
type ScenarioKey string

const (
	ScenarioMinimal     ScenarioKey = "minimal"
	ScenarioStandard    ScenarioKey = "standard"
	ScenarioBestInClass ScenarioKey = "bestInClass"
	ScenarioDelay90Days ScenarioKey = "delay90Days"
)

// CostScenario is one named implementation strategy with its own cost
// and risk profile
type CostScenario struct {
	// Name is the human-readable strategy name
	Name string `json:"name"`

	// Description summarizes the strategy
	Description string `json:"description"`

	// OneTimeCost is the scenario-adjusted one-time cost
	OneTimeCost float64 `json:"one_time_cost"`

	// RecurringCostAnnual is the scenario-adjusted recurring cost
	RecurringCostAnnual float64 `json:"recurring_cost_annual"`

	// ThreeYearTotal is one-time + recurring x 3, post adjustment
	ThreeYearTotal float64 `json:"three_year_total"`

	// RiskLevel classifies the strategy's compliance risk
	RiskLevel RiskLevel `json:"risk_level"`

	// Assumptions documents what the strategy assumes
	Assumptions []string `json:"assumptions"`
}

// ScenarioAnalysis is the full four-scenario comparison. All four
// scenarios always exist together.
type ScenarioAnalysis struct {
	// Minimal is the bare-compliance strategy
	Minimal CostScenario `json:"minimal"`

	// Standard is the straightforward full-compliance strategy
	Standard CostScenario `json:"standard"`

	// BestInClass is the gold-plated strategy
	BestInClass CostScenario `json:"bestInClass"`

	// Delay90Days defers implementation by a quarter
	Delay90Days CostScenario `json:"delay90Days"`

	// Recommended names the recommended scenario key
	Recommended ScenarioKey `json:"recommended"`
}

// Scenario returns the scenario for a key; ok is false for unknown keys
func (a *ScenarioAnalysis) Scenario(key ScenarioKey) (CostScenario, bool) {
	switch key {
	case ScenarioMinimal:
		return a.Minimal, true
	case ScenarioStandard:
		return a.Standard, true
	case ScenarioBestInClass:
		return a.BestInClass, true
	case ScenarioDelay90Days:
		return a.Delay90Days, true
	}
	return CostScenario{}, false
}
