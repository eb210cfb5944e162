package app

import (
	"context"
	"fmt"
	"time"

	"pulseboard/domain/core"
	"pulseboard/domain/eval"
	"pulseboard/internal"
	"pulseboard/models"
	"pulseboard/ports"
)

// A submission more than 10% past its target earns a target_exceeded note
const exceededMargin = 0.10

// AlertEngine turns an approved submission into at most one alert. It never
// mutates KPIs or targets; its only write is the alert record.
type AlertEngine struct {
	kpis     ports.KPIRepository
	targets  ports.TargetRepository
	actuals  ports.ActualRepository
	alerts   ports.AlertRepository
	notifier ports.Notifier
	logger   *internal.Logger
}

// NewAlertEngine creates an alert engine over the given stores
func NewAlertEngine(kpis ports.KPIRepository, targets ports.TargetRepository, actuals ports.ActualRepository, alerts ports.AlertRepository, notifier ports.Notifier, logger *internal.Logger) *AlertEngine {
	return &AlertEngine{
		kpis:     kpis,
		targets:  targets,
		actuals:  actuals,
		alerts:   alerts,
		notifier: notifier,
		logger:   logger,
	}
}

// EvaluateActual looks up the submission's KPI and target and runs the alert
// ladder. A missing KPI or target is nothing to evaluate against: the engine
// logs and returns no alert rather than an error. Alert-store failures do
// propagate so the caller can decide how hard to fail.
func (e *AlertEngine) EvaluateActual(ctx context.Context, actual *models.Actual) (*models.Alert, error) {
	kpi, err := e.kpis.GetKPI(ctx, actual.KPIID)
	if err != nil {
		if core.IsNotFoundError(err) {
			e.logger.Warn("alert engine: kpi %s not found, skipping evaluation", actual.KPIID)
			return nil, nil
		}
		return nil, err
	}
	target, err := e.targets.GetTarget(ctx, actual.TargetID)
	if err != nil {
		if core.IsNotFoundError(err) {
			e.logger.Warn("alert engine: target %s not found, skipping evaluation", actual.TargetID)
			return nil, nil
		}
		return nil, err
	}
	return e.OnSubmission(ctx, kpi, target, actual)
}

// OnSubmission applies the alert decision ladder, first match wins:
//
//  1. breach of the red cutoff    -> critical threshold_breach
//  2. breach of the amber cutoff  -> high threshold_breach
//  3. target beaten by over 10%   -> low target_exceeded
//  4. otherwise                   -> no alert
//
// The resulting alert is persisted unread and unresolved; notification
// dispatch is fire-and-forget.
func (e *AlertEngine) OnSubmission(ctx context.Context, kpi *models.KPI, target *models.Target, actual *models.Actual) (*models.Alert, error) {
	alert := e.classify(kpi, target, actual)
	if alert == nil {
		return nil, nil
	}

	if err := e.alerts.CreateAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("persisting alert for kpi %s: %w", kpi.ID, err)
	}
	e.dispatch(alert)
	return alert, nil
}

func (e *AlertEngine) classify(kpi *models.KPI, target *models.Target, actual *models.Actual) *models.Alert {
	redCut := target.Threshold.Red * target.Value / 100
	greenCut := target.Threshold.Green * target.Value / 100

	var (
		inRedBand   bool
		inAmberBand bool
		exceeded    bool
	)
	switch kpi.Polarity {
	case models.LowerIsBetter:
		inRedBand = actual.Value > redCut
		inAmberBand = actual.Value > greenCut
		exceeded = actual.Value < target.Value*(1-exceededMargin)
	default:
		inRedBand = actual.Value < redCut
		inAmberBand = actual.Value < greenCut
		exceeded = actual.Value > target.Value*(1+exceededMargin)
	}

	switch {
	case inRedBand:
		return e.newAlert(kpi, actual, models.AlertThresholdBreach, models.SeverityCritical,
			fmt.Sprintf("%s breached the red threshold", kpi.Name),
			fmt.Sprintf("%s recorded %.2f against a target of %.2f, past the red cutoff of %.0f%%.",
				kpi.Name, actual.Value, target.Value, target.Threshold.Red))
	case inAmberBand:
		return e.newAlert(kpi, actual, models.AlertThresholdBreach, models.SeverityHigh,
			fmt.Sprintf("%s slipped out of the green band", kpi.Name),
			fmt.Sprintf("%s recorded %.2f against a target of %.2f, short of the green cutoff of %.0f%%.",
				kpi.Name, actual.Value, target.Value, target.Threshold.Green))
	case exceeded:
		return e.newAlert(kpi, actual, models.AlertTargetExceeded, models.SeverityLow,
			fmt.Sprintf("%s exceeded its target", kpi.Name),
			fmt.Sprintf("%s recorded %.2f, beating the target of %.2f by more than 10%%.",
				kpi.Name, actual.Value, target.Value))
	}
	return nil
}

func (e *AlertEngine) newAlert(kpi *models.KPI, actual *models.Actual, alertType models.AlertType, severity models.AlertSeverity, title, description string) *models.Alert {
	kpiID := kpi.ID
	departmentID := kpi.DepartmentID
	triggeredBy := actual.SubmittedBy
	return &models.Alert{
		Type:         alertType,
		Severity:     severity,
		Title:        title,
		Description:  description,
		KPIID:        &kpiID,
		DepartmentID: &departmentID,
		TriggeredBy:  &triggeredBy,
	}
}

// SweepOverdue raises an overdue_submission alert for every active KPI that
// has a target for the period containing asOf but no non-rejected submission
// yet. Intended to run from a scheduler or an admin endpoint; repeated sweeps
// within one period will raise duplicate alerts, so run it at most daily.
func (e *AlertEngine) SweepOverdue(ctx context.Context, asOf time.Time) ([]*models.Alert, error) {
	kpis, err := e.kpis.ListKPIs(ctx, true)
	if err != nil {
		return nil, err
	}

	var raised []*models.Alert
	for _, kpi := range kpis {
		period, err := eval.ResolvePeriod(asOf, kpi.Frequency)
		if err != nil {
			e.logger.Warn("overdue sweep: kpi %s has invalid frequency %q, skipping", kpi.ID, kpi.Frequency)
			continue
		}

		target, err := e.targets.GetForPeriod(ctx, kpi.ID, period.Year, period.Quarter)
		if err != nil {
			if core.IsNotFoundError(err) {
				continue
			}
			return raised, err
		}

		_, err = e.actuals.CurrentForPeriod(ctx, kpi.ID, period.Year, period.Quarter)
		if err == nil {
			continue
		}
		if !core.IsNotFoundError(err) {
			return raised, err
		}

		alert := &models.Alert{
			Type:     models.AlertOverdueSubmission,
			Severity: models.SeverityMedium,
			Title:    fmt.Sprintf("%s has no submission this period", kpi.Name),
			Description: fmt.Sprintf("%s has a recorded target of %.2f for %s but no value has been submitted.",
				kpi.Name, target.Value, periodLabel(period)),
		}
		kpiID := kpi.ID
		departmentID := kpi.DepartmentID
		alert.KPIID = &kpiID
		alert.DepartmentID = &departmentID

		if err := e.alerts.CreateAlert(ctx, alert); err != nil {
			return raised, fmt.Errorf("persisting overdue alert for kpi %s: %w", kpi.ID, err)
		}
		e.dispatch(alert)
		raised = append(raised, alert)
	}
	return raised, nil
}

func periodLabel(period eval.Period) string {
	if period.HasQuarter() {
		return fmt.Sprintf("%d Q%d", period.Year, period.Quarter)
	}
	return fmt.Sprintf("%d", period.Year)
}

// dispatch hands the alert to the notifier without blocking the caller.
// Delivery failures are logged and never surface.
func (e *AlertEngine) dispatch(alert *models.Alert) {
	if e.notifier == nil {
		return
	}
	go func() {
		if err := e.notifier.Notify(context.Background(), alert); err != nil {
			e.logger.Warn("alert notification failed for %s: %v", alert.ID, err)
		}
	}()
}
