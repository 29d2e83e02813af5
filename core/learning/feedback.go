// Package learning adjusts estimate bands and confidence using
// historical (estimated, actual) variance pairs. Consumed after the
// fact; it never feeds back into extraction or calibration state.
package learning

import (
	"math"

	"compliance-cost/core/types"
)

// FeedbackRecord is one historical estimate-versus-actual observation
type FeedbackRecord struct {
	// EstimatedCost is what the engine predicted
	EstimatedCost float64 `json:"estimated_cost"`

	// ActualCost is what the implementation really cost
	ActualCost float64 `json:"actual_cost"`

	// Variance is (actual - estimated) / estimated
	Variance float64 `json:"variance"`
}

// NewFeedbackRecord computes the variance for an observation.
// A zero estimate yields zero variance rather than dividing by zero.
func NewFeedbackRecord(estimated, actual float64) FeedbackRecord {
	r := FeedbackRecord{EstimatedCost: estimated, ActualCost: actual}
	if estimated != 0 {
		r.Variance = (actual - estimated) / estimated
	}
	return r
}

// Band is the adjustable part of an estimate
type Band struct {
	// Low is the lower cost bound
	Low float64 `json:"low"`

	// High is the upper cost bound
	High float64 `json:"high"`

	// Confidence is the estimate confidence (0-1)
	Confidence float64 `json:"confidence"`
}

// ApplyFeedback shifts and narrows a band using history. Empty history
// returns the input unchanged. Both bounds shift by the same
// (1 + avgVariance) adjustment before the band narrows around the
// shifted midpoint; the band never narrows below 10% of the adjusted
// low nor faster than the 0.5 narrowing floor.
func ApplyFeedback(band Band, history []FeedbackRecord) Band {
	if len(history) == 0 {
		return band
	}

	avgVariance := meanVariance(history)
	originalSpread := (band.High - band.Low) / 2

	adjustedLow := band.Low * (1 + avgVariance)
	adjustedHigh := band.High * (1 + avgVariance)
	mid := (adjustedLow + adjustedHigh) / 2

	narrowingFactor := math.Max(0.5, 1-float64(len(history))/100)
	newSpread := math.Max(originalSpread*narrowingFactor, adjustedLow*0.1)

	boost := math.Min(0.2, (1-stdDevVariance(history))*0.2)
	confidence := band.Confidence + boost
	if confidence > 0.95 {
		confidence = 0.95
	}
	if confidence < 0 {
		confidence = 0
	}

	return Band{
		Low:        math.Round(mid - newSpread),
		High:       math.Round(mid + newSpread),
		Confidence: confidence,
	}
}

// ApplyToEstimate returns a copy of the estimate with its one-time band
// and confidence adjusted. The input estimate is not mutated.
func ApplyToEstimate(e *types.CostEstimate, history []FeedbackRecord) *types.CostEstimate {
	adjusted := *e
	band := ApplyFeedback(Band{
		Low:        e.OneTimeCostLow,
		High:       e.OneTimeCostHigh,
		Confidence: e.Confidence,
	}, history)

	adjusted.OneTimeCostLow = band.Low
	adjusted.OneTimeCostHigh = band.High
	adjusted.Confidence = band.Confidence
	return &adjusted
}

func meanVariance(history []FeedbackRecord) float64 {
	var sum float64
	for _, r := range history {
		sum += r.Variance
	}
	return sum / float64(len(history))
}

func stdDevVariance(history []FeedbackRecord) float64 {
	mean := meanVariance(history)
	var sq float64
	for _, r := range history {
		d := r.Variance - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(history)))
}
