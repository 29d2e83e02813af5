// Package portfolio - Cost forecasting
package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"

	"compliance-cost/core/types"
)

// InflationRate is the fixed annual inflation assumption
const InflationRate = 0.02

// Minimum portfolio size below which forecasts carry a dataset warning
const minEstimateCount = 5

// Confidence floor below which forecasts carry a confidence warning
const minAverageConfidence = 0.7

// Share of one-time cost above which the portfolio is flagged IT-heavy
const itHeavyShare = 0.6

// Forecast projects a portfolio trend forward the given number of
// years. Year 1 carries the full one-time total (band midpoint); later
// years carry only inflation-compounded recurring cost. Stateless.
func Forecast(trend *types.PortfolioTrend, years int) *types.PortfolioForecast {
	forecast := &types.PortfolioForecast{
		Years:         []types.ForecastYear{},
		InflationRate: InflationRate,
		RiskFactors:   riskFactors(trend),
	}
	if years <= 0 {
		return forecast
	}

	oneTimeMid := decimal.NewFromFloat((trend.TotalOneTimeLow + trend.TotalOneTimeHigh) / 2).Round(0)
	recurring := decimal.NewFromFloat(trend.TotalRecurringAnnual)
	inflation := decimal.NewFromFloat(1 + InflationRate)

	cumulative := decimal.Zero
	for year := 1; year <= years; year++ {
		oneTime := decimal.Zero
		if year == 1 {
			oneTime = oneTimeMid
		}

		// recurring x 1.02^(year-1), compounded
		adjusted := recurring.Mul(inflation.Pow(decimal.NewFromInt(int64(year - 1)))).Round(0)
		total := oneTime.Add(adjusted)
		cumulative = cumulative.Add(total)

		forecast.Years = append(forecast.Years, types.ForecastYear{
			Year:           year,
			OneTimeCost:    oneTime.InexactFloat64(),
			RecurringCost:  adjusted.InexactFloat64(),
			TotalCost:      total.InexactFloat64(),
			CumulativeCost: cumulative.InexactFloat64(),
		})
	}

	forecast.TotalCost = cumulative.InexactFloat64()
	return forecast
}

// riskFactors emits advisory flags, never blocking errors
func riskFactors(trend *types.PortfolioTrend) []string {
	var factors []string

	if trend.EstimateCount < minEstimateCount {
		factors = append(factors, fmt.Sprintf(
			"Limited dataset: only %d estimate(s) in the portfolio; projections are volatile.",
			trend.EstimateCount))
	}
	if trend.EstimateCount > 0 && trend.AverageConfidence < minAverageConfidence {
		factors = append(factors, fmt.Sprintf(
			"Low confidence: average extraction confidence %.2f is below %.2f.",
			trend.AverageConfidence, minAverageConfidence))
	}

	totalOneTime := (trend.TotalOneTimeLow + trend.TotalOneTimeHigh) / 2
	if totalOneTime > 0 {
		for _, dept := range trend.ByDepartment {
			if dept.Department == types.DepartmentIT && dept.OneTimeCost > totalOneTime*itHeavyShare {
				factors = append(factors,
					"IT-heavy portfolio: IT carries over 60% of one-time cost; consider phasing system work.")
				break
			}
		}
	}

	return factors
}
