package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"pulseboard/domain/core"
	"pulseboard/domain/eval"
	"pulseboard/internal"
	"pulseboard/models"
	"pulseboard/ports"
)

// SubmissionService owns the actual-value review lifecycle: submit, approve,
// reject. Approval triggers the alert engine exactly once per actual,
// synchronously, after the review transition is durably recorded.
type SubmissionService struct {
	kpis    ports.KPIRepository
	targets ports.TargetRepository
	actuals ports.ActualRepository
	engine  *AlertEngine
	clock   core.Clock
	logger  *internal.Logger
}

// NewSubmissionService creates a submission service over the given stores
func NewSubmissionService(kpis ports.KPIRepository, targets ports.TargetRepository, actuals ports.ActualRepository, engine *AlertEngine, clock core.Clock, logger *internal.Logger) *SubmissionService {
	return &SubmissionService{
		kpis:    kpis,
		targets: targets,
		actuals: actuals,
		engine:  engine,
		clock:   clock,
		logger:  logger,
	}
}

// SubmitRequest carries one new actual-value submission
type SubmitRequest struct {
	KPIID       uuid.UUID `json:"kpi_id" binding:"required"`
	Value       float64   `json:"value"`
	SubmittedBy uuid.UUID `json:"submitted_by" binding:"required"`
	Evidence    []string  `json:"evidence,omitempty"`
	Comments    string    `json:"comments,omitempty"`
}

// Submit records a pending actual against the target for the submission
// date's period. Submitting a value for a period with no recorded target is a
// validation error: there is nothing to evaluate against.
func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (*models.Actual, error) {
	kpi, err := s.kpis.GetKPI(ctx, req.KPIID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	period, err := eval.ResolvePeriod(now, kpi.Frequency)
	if err != nil {
		return nil, err
	}

	target, err := s.targets.GetForPeriod(ctx, kpi.ID, period.Year, period.Quarter)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, core.NewValidationError("target", "no target recorded for the current period")
		}
		return nil, err
	}

	actual := &models.Actual{
		KPIID:       kpi.ID,
		TargetID:    target.ID,
		Value:       req.Value,
		SubmittedBy: req.SubmittedBy,
		SubmittedAt: now,
		Evidence:    pq.StringArray(req.Evidence),
		Comments:    req.Comments,
		Status:      models.ReviewPending,
	}
	if err := s.actuals.CreateActual(ctx, actual); err != nil {
		return nil, err
	}
	return actual, nil
}

// Approve moves a pending submission to approved and runs the alert engine.
// Alerting is best-effort relative to the primary write: an alert-store
// failure is logged and the approval still succeeds.
func (s *SubmissionService) Approve(ctx context.Context, actualID, reviewer uuid.UUID, comments string) (*models.Actual, error) {
	actual, err := s.actuals.GetActual(ctx, actualID)
	if err != nil {
		return nil, err
	}
	if err := actual.Approve(reviewer, s.clock(), comments); err != nil {
		return nil, err
	}
	if err := s.actuals.UpdateReview(ctx, actual); err != nil {
		return nil, err
	}

	if _, err := s.engine.EvaluateActual(ctx, actual); err != nil {
		s.logger.Error("alerting failed for actual %s: %v", actual.ID, err)
	}
	return actual, nil
}

// Reject moves a pending submission to rejected. Rejected submissions never
// count toward the period's current value and are never evaluated.
func (s *SubmissionService) Reject(ctx context.Context, actualID, reviewer uuid.UUID, comments string) (*models.Actual, error) {
	actual, err := s.actuals.GetActual(ctx, actualID)
	if err != nil {
		return nil, err
	}
	if err := actual.Reject(reviewer, s.clock(), comments); err != nil {
		return nil, err
	}
	if err := s.actuals.UpdateReview(ctx, actual); err != nil {
		return nil, err
	}
	return actual, nil
}

// Submissions returns every submission recorded for the KPI's period
// containing asOf, most recent first, rejected ones included. Reviewers use
// this to see the full trail behind the period's current value.
func (s *SubmissionService) Submissions(ctx context.Context, kpiID uuid.UUID, asOf time.Time) ([]*models.Actual, error) {
	kpi, err := s.kpis.GetKPI(ctx, kpiID)
	if err != nil {
		return nil, err
	}
	period, err := eval.ResolvePeriod(asOf, kpi.Frequency)
	if err != nil {
		return nil, err
	}
	return s.actuals.ListForPeriod(ctx, kpi.ID, period.Year, period.Quarter)
}

// CurrentStatus evaluates the KPI's current-period submission against its
// target for dashboard display. A period with no target or no submission is
// "no data", reported via found=false rather than an error.
func (s *SubmissionService) CurrentStatus(ctx context.Context, kpiID uuid.UUID, asOf time.Time) (eval.Evaluation, bool, error) {
	kpi, err := s.kpis.GetKPI(ctx, kpiID)
	if err != nil {
		return eval.Evaluation{}, false, err
	}
	period, err := eval.ResolvePeriod(asOf, kpi.Frequency)
	if err != nil {
		return eval.Evaluation{}, false, err
	}
	target, err := s.targets.GetForPeriod(ctx, kpi.ID, period.Year, period.Quarter)
	if err != nil {
		if core.IsNotFoundError(err) {
			return eval.Evaluation{}, false, nil
		}
		return eval.Evaluation{}, false, err
	}
	actual, err := s.actuals.CurrentForPeriod(ctx, kpi.ID, period.Year, period.Quarter)
	if err != nil {
		if core.IsNotFoundError(err) {
			return eval.Evaluation{}, false, nil
		}
		return eval.Evaluation{}, false, err
	}

	evaluation, err := eval.Evaluate(actual.Value, target.Value, target.Threshold, kpi.Polarity)
	if err != nil {
		return eval.Evaluation{}, false, err
	}
	return evaluation, true, nil
}
