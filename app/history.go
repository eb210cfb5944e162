package app

import (
	"context"
	"time"

	"pulseboard/domain/core"
	"pulseboard/domain/eval"
	"pulseboard/models"
	"pulseboard/ports"
)

// How many years of history the anomaly and forecast paths look back over
const historyYears = 2

// PeriodValue is one point of a KPI's per-period history
type PeriodValue struct {
	Period eval.Period `json:"period"`
	Value  float64     `json:"value"`
}

// HistoryBuilder assembles the ordered per-period value series for a KPI:
// one value per period (the most recent non-rejected submission), skipping
// periods with no data, across the trailing two years up to the as-of date.
type HistoryBuilder struct {
	targets ports.TargetRepository
	actuals ports.ActualRepository
}

// NewHistoryBuilder creates a history builder over the target/actual stores
func NewHistoryBuilder(targets ports.TargetRepository, actuals ports.ActualRepository) *HistoryBuilder {
	return &HistoryBuilder{targets: targets, actuals: actuals}
}

// Series returns the KPI's per-period history ending at the period containing
// asOf. Periods are driven by the recorded targets so that the series has one
// slot per reporting period the organization actually planned for.
func (h *HistoryBuilder) Series(ctx context.Context, kpi *models.KPI, asOf time.Time) ([]PeriodValue, error) {
	current, err := eval.ResolvePeriod(asOf, kpi.Frequency)
	if err != nil {
		return nil, err
	}
	earliest := eval.Period{Year: current.Year - historyYears, Quarter: current.Quarter}

	targets, err := h.targets.ListForKPI(ctx, kpi.ID)
	if err != nil {
		return nil, err
	}

	var series []PeriodValue
	for _, target := range targets {
		period := eval.Period{Year: target.Year, Quarter: target.Quarter}
		if period.Before(earliest) || current.Before(period) {
			continue
		}
		actual, err := h.actuals.CurrentForPeriod(ctx, kpi.ID, period.Year, period.Quarter)
		if err != nil {
			if core.IsNotFoundError(err) {
				continue
			}
			return nil, err
		}
		series = append(series, PeriodValue{Period: period, Value: actual.Value})
	}
	return series, nil
}

// Values strips the period labels off a series
func Values(series []PeriodValue) []float64 {
	values := make([]float64, len(series))
	for i, point := range series {
		values[i] = point.Value
	}
	return values
}
