// Package engine orchestrates the estimation pipeline: extraction,
// calibration, allocation enrichment, scenarios, and sensitivity.
// The engine contains no cost math of its own.
package engine

import (
	"context"

	"go.uber.org/zap"

	"compliance-cost/core/allocation"
	"compliance-cost/core/calibration"
	"compliance-cost/core/extraction"
	"compliance-cost/core/portfolio"
	"compliance-cost/core/scenario"
	"compliance-cost/core/sensitivity"
	"compliance-cost/core/types"
	"compliance-cost/internal/logging"
)

// EstimateInput is one estimation request
type EstimateInput struct {
	// RegulationText is the regulation content
	RegulationText string `json:"regulation_text"`

	// RegulationTitle names the regulation
	RegulationTitle string `json:"regulation_title"`

	// RegulationVersionID identifies the regulation version
	RegulationVersionID string `json:"regulation_version_id"`

	// CustomerID identifies the company
	CustomerID string `json:"customer_id"`

	// Profile is the company profile to calibrate against
	Profile types.CompanyProfile `json:"profile"`
}

// EstimationReport is the full output for one estimation call
type EstimationReport struct {
	// Estimate is the calibrated cost estimate
	Estimate *types.CostEstimate `json:"estimate"`

	// Scenarios are the four implementation strategies
	Scenarios types.ScenarioAnalysis `json:"scenarios"`

	// Sensitivity quantifies input-assumption impact
	Sensitivity types.SensitivityAnalysis `json:"sensitivity"`
}

// PortfolioReport is the aggregated output for many estimates
type PortfolioReport struct {
	// Trend is the portfolio aggregate
	Trend *types.PortfolioTrend `json:"trend"`

	// Forecast projects the trend forward
	Forecast *types.PortfolioForecast `json:"forecast"`
}

// Engine runs the estimation pipeline
type Engine struct {
	extractor *extraction.Extractor
	enricher  *allocation.Enricher
	log       *zap.Logger
}

// New creates an engine. enricher may be nil to skip allocation
// enrichment.
func New(extractor *extraction.Extractor, enricher *allocation.Enricher) *Engine {
	return &Engine{
		extractor: extractor,
		enricher:  enricher,
		log:       logging.Named("engine"),
	}
}

// Estimate runs the full pipeline for one regulation and company.
// It always returns a best-effort numeric result; model failures along
// the way degrade silently to the deterministic paths.
func (e *Engine) Estimate(ctx context.Context, in EstimateInput) *EstimationReport {
	profile := in.Profile.Normalize()

	drivers := e.extractor.Extract(ctx, in.RegulationText, in.RegulationTitle)
	estimate := calibration.Calibrate(drivers, profile)
	estimate.RegulationVersionID = in.RegulationVersionID
	estimate.CustomerID = in.CustomerID
	estimate.EstimationMethod = extraction.MethodFor(drivers)

	if e.enricher != nil {
		estimate.DepartmentBreakdown = e.enricher.AllocateWithEnrichment(
			ctx, drivers, profile, calibration.Multiplier(profile))
	}

	e.log.Info("estimate produced",
		zap.String("regulation", in.RegulationTitle),
		zap.String("customer", in.CustomerID),
		zap.Int("drivers", len(drivers)),
		zap.String("method", string(estimate.EstimationMethod)))

	return &EstimationReport{
		Estimate:    estimate,
		Scenarios:   scenario.Generate(scenario.FromEstimate(estimate), profile),
		Sensitivity: sensitivity.Analyze(estimate, profile, drivers),
	}
}

// Portfolio aggregates estimates and forecasts them forward
func (e *Engine) Portfolio(estimates []*types.CostEstimate, years int) *PortfolioReport {
	trend := portfolio.Aggregate(estimates)
	return &PortfolioReport{
		Trend:    trend,
		Forecast: portfolio.Forecast(trend, years),
	}
}
