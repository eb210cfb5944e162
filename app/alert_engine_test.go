package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pulseboard/domain/core"
	"pulseboard/internal"
	"pulseboard/models"
)

func testKPI(polarity models.Polarity) *models.KPI {
	return &models.KPI{
		ID:           uuid.New(),
		Name:         "Customer Satisfaction",
		Unit:         "percentage",
		DataType:     models.DataTypeNumeric,
		Frequency:    models.FrequencyQuarterly,
		Polarity:     polarity,
		DepartmentID: uuid.New(),
	}
}

func testTarget(kpi *models.KPI, value float64) *models.Target {
	return &models.Target{
		ID:        uuid.New(),
		KPIID:     kpi.ID,
		Year:      2025,
		Quarter:   3,
		Value:     value,
		Threshold: models.Threshold{Green: 80, Amber: 60, Red: 40},
	}
}

func testActual(kpi *models.KPI, target *models.Target, value float64) *models.Actual {
	return &models.Actual{
		ID:          uuid.New(),
		KPIID:       kpi.ID,
		TargetID:    target.ID,
		Value:       value,
		SubmittedBy: uuid.New(),
		Status:      models.ReviewApproved,
	}
}

func newTestEngine(alerts *MockAlertRepository) *AlertEngine {
	return NewAlertEngine(new(MockKPIRepository), new(MockTargetRepository), new(MockActualRepository), alerts, nil, internal.NewLogger(internal.LogLevelError))
}

func TestAlertEngine_DecisionLadder(t *testing.T) {
	kpi := testKPI(models.HigherIsBetter)
	target := testTarget(kpi, 100)

	tests := []struct {
		name         string
		value        float64
		wantAlert    bool
		wantType     models.AlertType
		wantSeverity models.AlertSeverity
	}{
		{"red breach is critical", 30, true, models.AlertThresholdBreach, models.SeverityCritical},
		{"amber band is high", 70, true, models.AlertThresholdBreach, models.SeverityHigh},
		{"low amber band is still high", 45, true, models.AlertThresholdBreach, models.SeverityHigh},
		{"exceeded by over 10% is low", 115, true, models.AlertTargetExceeded, models.SeverityLow},
		{"healthy value is quiet", 90, false, "", ""},
		{"exactly at target is quiet", 100, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := new(MockAlertRepository)
			alerts.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)
			engine := newTestEngine(alerts)

			alert, err := engine.OnSubmission(context.Background(), kpi, target, testActual(kpi, target, tt.value))
			assert.NoError(t, err)

			if !tt.wantAlert {
				assert.Nil(t, alert)
				assert.Empty(t, alerts.created)
				return
			}
			if assert.NotNil(t, alert) {
				assert.Equal(t, tt.wantType, alert.Type)
				assert.Equal(t, tt.wantSeverity, alert.Severity)
				assert.False(t, alert.IsRead)
				assert.False(t, alert.IsResolved)
				assert.Equal(t, &kpi.ID, alert.KPIID)
			}
			assert.Len(t, alerts.created, 1, "at most one alert per submission")
		})
	}
}

func TestAlertEngine_SpecFixture(t *testing.T) {
	// Threshold {80, 60, 40} and target 100: 30 is critical, 70 sits in the
	// amber band so high, 115 exceeds, 90 is quiet.
	kpi := testKPI(models.HigherIsBetter)
	target := testTarget(kpi, 100)

	severities := map[float64]models.AlertSeverity{
		30:  models.SeverityCritical,
		70:  models.SeverityHigh,
		115: models.SeverityLow,
	}
	for value, want := range severities {
		alerts := new(MockAlertRepository)
		alerts.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)
		engine := newTestEngine(alerts)

		alert, err := engine.OnSubmission(context.Background(), kpi, target, testActual(kpi, target, value))
		assert.NoError(t, err)
		if assert.NotNil(t, alert, "value %.0f", value) {
			assert.Equal(t, want, alert.Severity, "value %.0f", value)
		}
	}
}

func TestAlertEngine_LowerIsBetterInverts(t *testing.T) {
	// Days-to-resolve: target 10 days, red beyond 150%
	kpi := testKPI(models.LowerIsBetter)
	target := testTarget(kpi, 10)
	target.Threshold = models.Threshold{Green: 110, Amber: 130, Red: 150}

	alerts := new(MockAlertRepository)
	alerts.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)
	engine := newTestEngine(alerts)

	// 16 days > 15-day red cutoff: critical
	alert, err := engine.OnSubmission(context.Background(), kpi, target, testActual(kpi, target, 16))
	assert.NoError(t, err)
	if assert.NotNil(t, alert) {
		assert.Equal(t, models.SeverityCritical, alert.Severity)
	}

	// 8 days beats the 10-day target by more than 10%: target exceeded
	alerts2 := new(MockAlertRepository)
	alerts2.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)
	engine = newTestEngine(alerts2)
	alert, err = engine.OnSubmission(context.Background(), kpi, target, testActual(kpi, target, 8))
	assert.NoError(t, err)
	if assert.NotNil(t, alert) {
		assert.Equal(t, models.AlertTargetExceeded, alert.Type)
	}
}

func TestAlertEngine_MissingLookupsAbortSilently(t *testing.T) {
	kpi := testKPI(models.HigherIsBetter)
	target := testTarget(kpi, 100)
	actual := testActual(kpi, target, 30)

	kpis := new(MockKPIRepository)
	targets := new(MockTargetRepository)
	alerts := new(MockAlertRepository)
	engine := NewAlertEngine(kpis, targets, new(MockActualRepository), alerts, nil, internal.NewLogger(internal.LogLevelError))

	kpis.On("GetKPI", mock.Anything, actual.KPIID).Return(nil, core.ErrKPINotFound)

	alert, err := engine.EvaluateActual(context.Background(), actual)
	assert.NoError(t, err, "a missing kpi is nothing to evaluate, not an error")
	assert.Nil(t, alert)
	alerts.AssertNotCalled(t, "CreateAlert", mock.Anything, mock.Anything)
}

func TestAlertEngine_SweepOverdue(t *testing.T) {
	asOf := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	overdue := testKPI(models.HigherIsBetter)
	submitted := testKPI(models.HigherIsBetter)
	untargeted := testKPI(models.HigherIsBetter)
	overdueTarget := testTarget(overdue, 100)
	submittedTarget := testTarget(submitted, 50)

	kpis := new(MockKPIRepository)
	targets := new(MockTargetRepository)
	actuals := new(MockActualRepository)
	alerts := new(MockAlertRepository)
	engine := NewAlertEngine(kpis, targets, actuals, alerts, nil, internal.NewLogger(internal.LogLevelError))

	kpis.On("ListKPIs", mock.Anything, true).Return([]*models.KPI{overdue, submitted, untargeted}, nil)
	targets.On("GetForPeriod", mock.Anything, overdue.ID, 2025, 3).Return(overdueTarget, nil)
	targets.On("GetForPeriod", mock.Anything, submitted.ID, 2025, 3).Return(submittedTarget, nil)
	targets.On("GetForPeriod", mock.Anything, untargeted.ID, 2025, 3).Return(nil, core.ErrTargetNotFound)
	actuals.On("CurrentForPeriod", mock.Anything, overdue.ID, 2025, 3).Return(nil, core.ErrActualNotFound)
	actuals.On("CurrentForPeriod", mock.Anything, submitted.ID, 2025, 3).Return(testActual(submitted, submittedTarget, 48), nil)
	alerts.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)

	raised, err := engine.SweepOverdue(context.Background(), asOf)
	assert.NoError(t, err)
	if assert.Len(t, raised, 1, "only the KPI with a target and no submission is overdue") {
		assert.Equal(t, models.AlertOverdueSubmission, raised[0].Type)
		assert.Equal(t, models.SeverityMedium, raised[0].Severity)
		assert.Equal(t, &overdue.ID, raised[0].KPIID)
	}
}

func TestAlertEngine_SweepOverdueYearlyLabel(t *testing.T) {
	asOf := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	kpi := testKPI(models.HigherIsBetter)
	kpi.Frequency = models.FrequencyYearly
	target := testTarget(kpi, 100)
	target.Quarter = 0

	kpis := new(MockKPIRepository)
	targets := new(MockTargetRepository)
	actuals := new(MockActualRepository)
	alerts := new(MockAlertRepository)
	engine := NewAlertEngine(kpis, targets, actuals, alerts, nil, internal.NewLogger(internal.LogLevelError))

	kpis.On("ListKPIs", mock.Anything, true).Return([]*models.KPI{kpi}, nil)
	targets.On("GetForPeriod", mock.Anything, kpi.ID, 2025, 0).Return(target, nil)
	actuals.On("CurrentForPeriod", mock.Anything, kpi.ID, 2025, 0).Return(nil, core.ErrActualNotFound)
	alerts.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)

	raised, err := engine.SweepOverdue(context.Background(), asOf)
	assert.NoError(t, err)
	if assert.Len(t, raised, 1) {
		assert.Contains(t, raised[0].Description, "for 2025 but", "yearly periods carry no quarter")
		assert.NotContains(t, raised[0].Description, "Q0")
	}
}

func TestAlertEngine_StoreFailurePropagates(t *testing.T) {
	kpi := testKPI(models.HigherIsBetter)
	target := testTarget(kpi, 100)

	alerts := new(MockAlertRepository)
	alerts.On("CreateAlert", mock.Anything, mock.Anything).Return(assert.AnError)
	engine := newTestEngine(alerts)

	_, err := engine.OnSubmission(context.Background(), kpi, target, testActual(kpi, target, 30))
	assert.Error(t, err)
}
