package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pulseboard/domain/eval"
	"pulseboard/domain/trend"
	"pulseboard/ports"
)

// ForecastService fits a trend line over a KPI's per-period history and
// projects the next periods. Unlike the alert paths, forecast failures are
// user-visible: a missing KPI or too little history surfaces as an error.
type ForecastService struct {
	kpis    ports.KPIRepository
	history *HistoryBuilder
}

// NewForecastService creates a forecast service over the given stores
func NewForecastService(kpis ports.KPIRepository, history *HistoryBuilder) *ForecastService {
	return &ForecastService{kpis: kpis, history: history}
}

// ForecastResult is the computed-on-demand projection for a KPI. It is never
// persisted.
type ForecastResult struct {
	KPIID          uuid.UUID       `json:"kpi_id"`
	KPIName        string          `json:"kpi_name"`
	History        []PeriodValue   `json:"history"`
	Points         []ForecastPoint `json:"points"`
	Trend          trend.Direction `json:"trend"`
	Recommendation string          `json:"recommendation"`
}

// ForecastPoint pairs a projected value with the reporting period it lands in
type ForecastPoint struct {
	Period     eval.Period `json:"period"`
	Value      float64     `json:"value"`
	Confidence float64     `json:"confidence"`
}

// Forecast projects the KPI's next four reporting periods as of the given
// date. Requires at least two historical points
// (core.ErrInsufficientHistory otherwise).
func (s *ForecastService) Forecast(ctx context.Context, kpiID uuid.UUID, asOf time.Time) (*ForecastResult, error) {
	kpi, err := s.kpis.GetKPI(ctx, kpiID)
	if err != nil {
		return nil, err
	}

	series, err := s.history.Series(ctx, kpi, asOf)
	if err != nil {
		return nil, err
	}

	fitted, err := trend.FitForecast(Values(series))
	if err != nil {
		return nil, err
	}

	points := make([]ForecastPoint, len(fitted.Points))
	period := series[len(series)-1].Period
	for i, p := range fitted.Points {
		period = period.Next()
		points[i] = ForecastPoint{
			Period:     period,
			Value:      p.Value,
			Confidence: p.Confidence,
		}
	}

	return &ForecastResult{
		KPIID:          kpi.ID,
		KPIName:        kpi.Name,
		History:        series,
		Points:         points,
		Trend:          fitted.Trend,
		Recommendation: fitted.Recommendation,
	}, nil
}
