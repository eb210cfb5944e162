package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pulseboard/domain/core"
	"pulseboard/domain/trend"
	"pulseboard/internal"
	"pulseboard/models"
	"pulseboard/ports"
)

// AnomalyService runs statistical outlier detection over a KPI's per-period
// history and raises a medium-severity alert when the latest value swings
// outside the baseline band.
type AnomalyService struct {
	kpis    ports.KPIRepository
	history *HistoryBuilder
	alerts  ports.AlertRepository
	logger  *internal.Logger
}

// NewAnomalyService creates an anomaly detector over the given stores
func NewAnomalyService(kpis ports.KPIRepository, history *HistoryBuilder, alerts ports.AlertRepository, logger *internal.Logger) *AnomalyService {
	return &AnomalyService{kpis: kpis, history: history, alerts: alerts, logger: logger}
}

// AnomalyResult reports the detection outcome and the alert it raised, if any
type AnomalyResult struct {
	KPIID uuid.UUID          `json:"kpi_id"`
	Check trend.AnomalyCheck `json:"check"`
	Alert *models.Alert      `json:"alert,omitempty"`
}

// Detect checks the KPI's latest per-period value against its baseline as of
// the given date. A missing KPI or too little history is nothing to detect
// over, not an error: the result simply reports no anomaly. Alert-store
// failures do propagate.
func (s *AnomalyService) Detect(ctx context.Context, kpiID uuid.UUID, asOf time.Time) (*AnomalyResult, error) {
	result := &AnomalyResult{KPIID: kpiID}

	kpi, err := s.kpis.GetKPI(ctx, kpiID)
	if err != nil {
		if core.IsNotFoundError(err) {
			s.logger.Warn("anomaly detector: kpi %s not found, nothing to check", kpiID)
			return result, nil
		}
		return nil, err
	}

	series, err := s.history.Series(ctx, kpi, asOf)
	if err != nil {
		return nil, err
	}

	result.Check = trend.CheckAnomaly(Values(series))
	if !result.Check.IsAnomaly {
		return result, nil
	}

	departmentID := kpi.DepartmentID
	alert := &models.Alert{
		Type:     models.AlertAnomalyDetected,
		Severity: models.SeverityMedium,
		Title:    fmt.Sprintf("Unexpected swing in %s", kpi.Name),
		Description: fmt.Sprintf("%s recorded %.2f, more than two standard deviations from its recent baseline mean of %.2f.",
			kpi.Name, result.Check.RecentValue, result.Check.BaselineMean),
		KPIID:        &kpi.ID,
		DepartmentID: &departmentID,
	}
	if err := s.alerts.CreateAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("persisting anomaly alert for kpi %s: %w", kpi.ID, err)
	}
	result.Alert = alert
	return result, nil
}
