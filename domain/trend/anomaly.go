package trend

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Baseline window preceding the most recent point, the sigma multiplier for
// flagging it, and the relative deviation floor below which a drift is never
// flagged no matter how tight the baseline.
const (
	baselineWindow  = 2
	sigmaMultiplier = 2.0
	minAnomalyData  = 3
	deviationFloor  = 0.05
)

// AnomalyCheck reports the outlier test over a per-period series
type AnomalyCheck struct {
	IsAnomaly    bool    `json:"is_anomaly"`
	RecentValue  float64 `json:"recent_value"`
	BaselineMean float64 `json:"baseline_mean"`
	BaselineStd  float64 `json:"baseline_std"`
	DataPoints   int     `json:"data_points"`
}

// CheckAnomaly runs a statistical outlier test over the series: the last
// point is compared against the mean and population standard deviation of the
// two points immediately preceding it, and flagged when it falls more than
// two sigma away. A two-point baseline makes raw sigma very tight, so the
// band is floored at 5% of the baseline mean: a drift within 5% is never
// flagged (series like [50, 51, 52] stay quiet), while [50, 52, 90] still
// trips the sigma test.
//
// Fewer than three points is not an error: there is no baseline to deviate
// from, so the result is simply "not anomalous". The floor also settles the
// zero-variance case without a special branch: a flat baseline flags any
// departure beyond 5% of its mean, and a flat-at-zero baseline flags any
// nonzero value.
func CheckAnomaly(values []float64) AnomalyCheck {
	n := len(values)
	check := AnomalyCheck{DataPoints: n}
	if n < minAnomalyData {
		return check
	}

	recent := values[n-1]
	baseline := values[n-1-baselineWindow : n-1]

	mean, _ := stats.Mean(baseline)
	std, _ := stats.StandardDeviationPopulation(baseline)

	check.RecentValue = recent
	check.BaselineMean = mean
	check.BaselineStd = std

	distance := math.Abs(recent - mean)
	band := math.Max(sigmaMultiplier*std, deviationFloor*math.Abs(mean))
	check.IsAnomaly = distance > band
	return check
}
