package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pulseboard/domain/core"
	"pulseboard/domain/trend"
	"pulseboard/models"
)

// quarterTargets records one target per quarter ending at 2025 Q3
func quarterTargets(kpi *models.KPI, values []float64) []*models.Target {
	periods := []struct{ year, quarter int }{
		{2024, 4}, {2025, 1}, {2025, 2}, {2025, 3},
	}
	targets := make([]*models.Target, len(values))
	for i := range values {
		targets[i] = &models.Target{
			ID:        uuid.New(),
			KPIID:     kpi.ID,
			Year:      periods[i].year,
			Quarter:   periods[i].quarter,
			Value:     100,
			Threshold: models.Threshold{Green: 80, Amber: 60, Red: 40},
		}
	}
	return targets
}

func stubHistory(targets *MockTargetRepository, actuals *MockActualRepository, kpi *models.KPI, periodTargets []*models.Target, values []float64) {
	targets.On("ListForKPI", mock.Anything, kpi.ID).Return(periodTargets, nil)
	for i, target := range periodTargets {
		actual := &models.Actual{ID: uuid.New(), KPIID: kpi.ID, TargetID: target.ID, Value: values[i], Status: models.ReviewApproved}
		actuals.On("CurrentForPeriod", mock.Anything, kpi.ID, target.Year, target.Quarter).Return(actual, nil)
	}
}

func TestForecastService_LinearSeries(t *testing.T) {
	kpis := new(MockKPIRepository)
	targets := new(MockTargetRepository)
	actuals := new(MockActualRepository)
	svc := NewForecastService(kpis, NewHistoryBuilder(targets, actuals))

	kpi := testKPI(models.HigherIsBetter)
	values := []float64{10, 20, 30, 40}
	kpis.On("GetKPI", mock.Anything, kpi.ID).Return(kpi, nil)
	stubHistory(targets, actuals, kpi, quarterTargets(kpi, values), values)

	asOf := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.Forecast(context.Background(), kpi.ID, asOf)
	assert.NoError(t, err)

	assert.Equal(t, trend.TrendIncreasing, result.Trend)
	assert.Len(t, result.Points, 4)
	assert.InDelta(t, 60, result.Points[0].Value, 1e-9)
	assert.Equal(t, 1.0, result.Points[0].Confidence)

	// Projections continue the quarterly calendar past 2025 Q3
	assert.Equal(t, 2025, result.Points[0].Period.Year)
	assert.Equal(t, 4, result.Points[0].Period.Quarter)
	assert.Equal(t, 2026, result.Points[1].Period.Year)
	assert.Equal(t, 1, result.Points[1].Period.Quarter)
}

func TestForecastService_InsufficientHistory(t *testing.T) {
	kpis := new(MockKPIRepository)
	targets := new(MockTargetRepository)
	actuals := new(MockActualRepository)
	svc := NewForecastService(kpis, NewHistoryBuilder(targets, actuals))

	kpi := testKPI(models.HigherIsBetter)
	kpis.On("GetKPI", mock.Anything, kpi.ID).Return(kpi, nil)
	targets.On("ListForKPI", mock.Anything, kpi.ID).Return([]*models.Target{}, nil)

	_, err := svc.Forecast(context.Background(), kpi.ID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, core.ErrInsufficientHistory)
}

func TestForecastService_MissingKPIIsReported(t *testing.T) {
	kpis := new(MockKPIRepository)
	svc := NewForecastService(kpis, NewHistoryBuilder(new(MockTargetRepository), new(MockActualRepository)))

	id := uuid.New()
	kpis.On("GetKPI", mock.Anything, id).Return(nil, core.ErrKPINotFound)

	_, err := svc.Forecast(context.Background(), id, time.Now())
	assert.ErrorIs(t, err, core.ErrKPINotFound)
}

func TestAnomalyService_FlagsSwingAndRaisesAlert(t *testing.T) {
	kpis := new(MockKPIRepository)
	targets := new(MockTargetRepository)
	actuals := new(MockActualRepository)
	alerts := new(MockAlertRepository)
	svc := NewAnomalyService(kpis, NewHistoryBuilder(targets, actuals), alerts, testLogger())

	kpi := testKPI(models.HigherIsBetter)
	values := []float64{50, 52, 90}
	kpis.On("GetKPI", mock.Anything, kpi.ID).Return(kpi, nil)
	stubHistory(targets, actuals, kpi, quarterTargets(kpi, values), values)
	alerts.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Detect(context.Background(), kpi.ID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.True(t, result.Check.IsAnomaly)
	if assert.NotNil(t, result.Alert) {
		assert.Equal(t, models.AlertAnomalyDetected, result.Alert.Type)
		assert.Equal(t, models.SeverityMedium, result.Alert.Severity)
	}
}

func TestAnomalyService_SteadySeriesStaysQuiet(t *testing.T) {
	kpis := new(MockKPIRepository)
	targets := new(MockTargetRepository)
	actuals := new(MockActualRepository)
	alerts := new(MockAlertRepository)
	svc := NewAnomalyService(kpis, NewHistoryBuilder(targets, actuals), alerts, testLogger())

	kpi := testKPI(models.HigherIsBetter)
	values := []float64{50, 51, 52}
	kpis.On("GetKPI", mock.Anything, kpi.ID).Return(kpi, nil)
	stubHistory(targets, actuals, kpi, quarterTargets(kpi, values), values)

	result, err := svc.Detect(context.Background(), kpi.ID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.False(t, result.Check.IsAnomaly)
	assert.Nil(t, result.Alert)
	alerts.AssertNotCalled(t, "CreateAlert", mock.Anything, mock.Anything)
}

func TestAnomalyService_MissingKPIIsNothingToDo(t *testing.T) {
	kpis := new(MockKPIRepository)
	svc := NewAnomalyService(kpis, NewHistoryBuilder(new(MockTargetRepository), new(MockActualRepository)), new(MockAlertRepository), testLogger())

	id := uuid.New()
	kpis.On("GetKPI", mock.Anything, id).Return(nil, core.ErrKPINotFound)

	result, err := svc.Detect(context.Background(), id, time.Now())
	assert.NoError(t, err)
	assert.False(t, result.Check.IsAnomaly)
}

func TestScenarioService_ProjectsAgainstCurrent(t *testing.T) {
	kpis := new(MockKPIRepository)
	actuals := new(MockActualRepository)
	svc := NewScenarioService(kpis, actuals)

	kpi := testKPI(models.HigherIsBetter)
	kpis.On("GetKPI", mock.Anything, kpi.ID).Return(kpi, nil)
	actuals.On("CurrentForPeriod", mock.Anything, kpi.ID, 2025, 3).
		Return(&models.Actual{Value: 100, Status: models.ReviewApproved}, nil)

	result, err := svc.RunScenario(context.Background(), kpi.ID, []ScenarioInput{
		{Name: "expand coverage", Value: 120},
		{Name: "status quo", Value: 101},
	}, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	assert.Equal(t, 100.0, result.CurrentValue)
	assert.Equal(t, trend.ImpactPositive, result.Scenarios[0].Impact)
	assert.Equal(t, 122.4, result.Scenarios[0].ProjectedOutcome)
	assert.Equal(t, trend.ImpactNeutral, result.Scenarios[1].Impact)
	assert.Len(t, result.Recommendations, 1)
}

func TestScenarioService_NoCurrentValueDefaultsToZero(t *testing.T) {
	kpis := new(MockKPIRepository)
	actuals := new(MockActualRepository)
	svc := NewScenarioService(kpis, actuals)

	kpi := testKPI(models.HigherIsBetter)
	kpis.On("GetKPI", mock.Anything, kpi.ID).Return(kpi, nil)
	actuals.On("CurrentForPeriod", mock.Anything, kpi.ID, 2025, 3).Return(nil, core.ErrActualNotFound)

	result, err := svc.RunScenario(context.Background(), kpi.ID, []ScenarioInput{{Name: "first push", Value: 40}},
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 0.0, result.CurrentValue)
	assert.Equal(t, 0.0, result.Scenarios[0].ChangePercent)
}
