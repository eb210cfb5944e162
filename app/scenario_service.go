package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pulseboard/domain/core"
	"pulseboard/domain/eval"
	"pulseboard/domain/trend"
	"pulseboard/models"
	"pulseboard/ports"
)

// ScenarioService projects hypothetical inputs against a KPI's current-period
// performance. Results are computed on demand and never persisted.
type ScenarioService struct {
	kpis    ports.KPIRepository
	actuals ports.ActualRepository
}

// NewScenarioService creates a scenario service over the given stores
func NewScenarioService(kpis ports.KPIRepository, actuals ports.ActualRepository) *ScenarioService {
	return &ScenarioService{kpis: kpis, actuals: actuals}
}

// ScenarioInput is one hypothetical value to test
type ScenarioInput struct {
	Name  string  `json:"name" binding:"required"`
	Value float64 `json:"value"`
}

// ScenarioResult carries the projections and the grouped recommendations
type ScenarioResult struct {
	KPIID           uuid.UUID          `json:"kpi_id"`
	CurrentValue    float64            `json:"current_value"`
	Scenarios       []trend.Projection `json:"scenarios"`
	Recommendations []string           `json:"recommendations"`
}

// RunScenario projects each hypothetical input against the KPI's
// current-period actual (0 when the period has no submission yet). A missing
// KPI is a reported error: the caller explicitly asked for this KPI.
func (s *ScenarioService) RunScenario(ctx context.Context, kpiID uuid.UUID, inputs []ScenarioInput, asOf time.Time) (*ScenarioResult, error) {
	kpi, err := s.kpis.GetKPI(ctx, kpiID)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, core.NewValidationError("scenarios", "at least one scenario is required")
	}

	current, err := s.currentValue(ctx, kpi, asOf)
	if err != nil {
		return nil, err
	}

	projections := make([]trend.Projection, len(inputs))
	for i, input := range inputs {
		projections[i] = trend.Project(input.Name, current, input.Value)
	}

	return &ScenarioResult{
		KPIID:           kpi.ID,
		CurrentValue:    current,
		Scenarios:       projections,
		Recommendations: trend.ScenarioRecommendations(projections),
	}, nil
}

func (s *ScenarioService) currentValue(ctx context.Context, kpi *models.KPI, asOf time.Time) (float64, error) {
	period, err := eval.ResolvePeriod(asOf, kpi.Frequency)
	if err != nil {
		return 0, err
	}
	actual, err := s.actuals.CurrentForPeriod(ctx, kpi.ID, period.Year, period.Quarter)
	if err != nil {
		if core.IsNotFoundError(err) {
			return 0, nil
		}
		return 0, err
	}
	return actual.Value, nil
}
