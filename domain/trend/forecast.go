// Package trend holds the pure statistical core behind forecasting, anomaly
// detection and scenario projection. Functions operate on ordered per-period
// value series; callers own series construction and persistence.
package trend

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"pulseboard/domain/core"
)

// Direction labels the fitted slope of a series
type Direction string

const (
	TrendIncreasing Direction = "increasing"
	TrendDecreasing Direction = "decreasing"
	TrendStable     Direction = "stable"
)

// Slope cutoffs are in the KPI's native unit per period, not normalized.
// A known limitation: a KPI measured in millions will almost always read
// "increasing" or "decreasing".
const (
	slopeIncreasing = 0.5
	slopeDecreasing = -0.5

	forecastHorizon   = 4
	confidenceDecay   = 0.1
	confidenceFloor   = 0.6
	minForecastPoints = 2
)

// ForecastPoint is one projected future-period value
type ForecastPoint struct {
	PeriodsAhead int     `json:"periods_ahead"`
	Value        float64 `json:"value"`
	Confidence   float64 `json:"confidence"`
}

// Forecast is the fitted projection over the next few periods
type Forecast struct {
	Points         []ForecastPoint `json:"points"`
	Slope          float64         `json:"slope"`
	Intercept      float64         `json:"intercept"`
	Trend          Direction       `json:"trend"`
	Recommendation string          `json:"recommendation"`
}

var recommendations = map[Direction]string{
	TrendIncreasing: "Performance is trending upward. Maintain current initiatives and consider raising the next period's target.",
	TrendDecreasing: "Performance is trending downward. Review recent changes and plan corrective action before the next reporting period.",
	TrendStable:     "Performance is stable. Look for incremental improvements to move beyond the current plateau.",
}

// FitForecast fits an ordinary least-squares line over the series (x = 0..n-1)
// and projects the next four periods. Predicted values are clamped at zero.
// Confidence starts at 1.0 for the first projected period and decays by 0.1
// per additional step, floored at 0.6.
//
// Fewer than two points cannot anchor a line and fail with
// ErrInsufficientHistory.
func FitForecast(values []float64) (*Forecast, error) {
	n := len(values)
	if n < minForecastPoints {
		return nil, core.ErrInsufficientHistory
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	intercept, slope := stat.LinearRegression(xs, values, nil, false)

	points := make([]ForecastPoint, 0, forecastHorizon)
	for step := 1; step <= forecastHorizon; step++ {
		predicted := intercept + slope*float64(n+step)
		if predicted < 0 {
			predicted = 0
		}
		confidence := 1.0 - confidenceDecay*float64(step-1)
		if confidence < confidenceFloor {
			confidence = confidenceFloor
		}
		points = append(points, ForecastPoint{
			PeriodsAhead: step,
			Value:        round2(predicted),
			Confidence:   round2(confidence),
		})
	}

	direction := classifySlope(slope)
	return &Forecast{
		Points:         points,
		Slope:          slope,
		Intercept:      intercept,
		Trend:          direction,
		Recommendation: recommendations[direction],
	}, nil
}

func classifySlope(slope float64) Direction {
	switch {
	case slope > slopeIncreasing:
		return TrendIncreasing
	case slope < slopeDecreasing:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
