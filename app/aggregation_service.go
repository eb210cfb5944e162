package app

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"pulseboard/domain/core"
	"pulseboard/domain/eval"
	"pulseboard/models"
	"pulseboard/ports"
)

// AggregationService rolls KPI-level statuses up into department and
// organization composites. Every number it produces is a deterministic
// function of stored targets and submissions.
type AggregationService struct {
	departments ports.DepartmentRepository
	kpis        ports.KPIRepository
	targets     ports.TargetRepository
	actuals     ports.ActualRepository
}

// NewAggregationService creates an aggregation service over the given stores
func NewAggregationService(departments ports.DepartmentRepository, kpis ports.KPIRepository, targets ports.TargetRepository, actuals ports.ActualRepository) *AggregationService {
	return &AggregationService{
		departments: departments,
		kpis:        kpis,
		targets:     targets,
		actuals:     actuals,
	}
}

// DepartmentPerformance computes one score per active department for the
// requested period. Composite is the equal-weight mean of constituent KPI
// progress values; status is the majority vote of constituent statuses with
// the worse status winning ties; trend is the composite delta against the
// immediately prior period. Departments are independent and computed in
// parallel.
func (s *AggregationService) DepartmentPerformance(ctx context.Context, year, quarter int) ([]models.DepartmentScore, error) {
	departments, err := s.departments.ListDepartments(ctx, true)
	if err != nil {
		return nil, err
	}

	period := eval.Period{Year: year, Quarter: quarter}
	scores := make([]models.DepartmentScore, len(departments))

	g, gctx := errgroup.WithContext(ctx)
	for i, department := range departments {
		g.Go(func() error {
			score, err := s.scoreDepartment(gctx, department, period)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].DepartmentName < scores[j].DepartmentName
	})
	return scores, nil
}

// OrganizationPerformance rolls department composites up to a single
// organization score, weighting departments equally.
func (s *AggregationService) OrganizationPerformance(ctx context.Context, year, quarter int) (*models.OrganizationScore, error) {
	scores, err := s.DepartmentPerformance(ctx, year, quarter)
	if err != nil {
		return nil, err
	}

	composites := make([]float64, 0, len(scores))
	for _, score := range scores {
		if score.KPICount > 0 {
			composites = append(composites, score.Composite)
		}
	}
	composite := 0.0
	if len(composites) > 0 {
		composite, _ = stats.Mean(composites)
		composite = round2(composite)
	}

	return &models.OrganizationScore{
		Year:        year,
		Quarter:     quarter,
		Composite:   composite,
		Departments: scores,
	}, nil
}

func (s *AggregationService) scoreDepartment(ctx context.Context, department *models.Department, period eval.Period) (models.DepartmentScore, error) {
	score := models.DepartmentScore{
		DepartmentID:   department.ID,
		DepartmentName: department.Name,
		Year:           period.Year,
		Quarter:        period.Quarter,
		Status:         string(eval.StatusRed),
	}

	composite, statuses, count, err := s.composite(ctx, department.ID, period)
	if err != nil {
		return score, err
	}
	score.Composite = composite
	score.KPICount = count
	if count > 0 {
		score.Status = string(majorityStatus(statuses))
	}

	prior, _, priorCount, err := s.composite(ctx, department.ID, period.Prev())
	if err != nil {
		return score, err
	}
	if count > 0 && priorCount > 0 {
		score.Trend = round2(composite - prior)
	}
	return score, nil
}

// composite evaluates every active KPI of the department for the period,
// skipping KPIs with no target or no submission, and returns the equal-weight
// mean progress plus the per-KPI statuses.
func (s *AggregationService) composite(ctx context.Context, departmentID uuid.UUID, period eval.Period) (float64, []eval.Status, int, error) {
	kpis, err := s.kpis.ListByDepartment(ctx, departmentID, true)
	if err != nil {
		return 0, nil, 0, err
	}

	var (
		progresses []float64
		statuses   []eval.Status
	)
	for _, kpi := range kpis {
		kpiPeriod := period
		if kpi.Frequency == models.FrequencyYearly {
			kpiPeriod.Quarter = 0
		}

		target, err := s.targets.GetForPeriod(ctx, kpi.ID, kpiPeriod.Year, kpiPeriod.Quarter)
		if err != nil {
			if core.IsNotFoundError(err) {
				continue
			}
			return 0, nil, 0, err
		}
		actual, err := s.actuals.CurrentForPeriod(ctx, kpi.ID, kpiPeriod.Year, kpiPeriod.Quarter)
		if err != nil {
			if core.IsNotFoundError(err) {
				continue
			}
			return 0, nil, 0, err
		}

		evaluation, err := eval.Evaluate(actual.Value, target.Value, target.Threshold, kpi.Polarity)
		if err != nil {
			return 0, nil, 0, err
		}
		progresses = append(progresses, evaluation.Progress)
		statuses = append(statuses, evaluation.Status)
	}

	if len(progresses) == 0 {
		return 0, nil, 0, nil
	}
	mean, err := stats.Mean(progresses)
	if err != nil {
		return 0, nil, 0, err
	}
	return round2(mean), statuses, len(progresses), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// majorityStatus picks the most common status; ties go to the worse band so
// dashboards never overstate health.
func majorityStatus(statuses []eval.Status) eval.Status {
	counts := make(map[eval.Status]int, 3)
	for _, status := range statuses {
		counts[status]++
	}
	best := eval.StatusRed
	bestCount := -1
	for _, status := range []eval.Status{eval.StatusRed, eval.StatusAmber, eval.StatusGreen} {
		if counts[status] > bestCount {
			best = status
			bestCount = counts[status]
		}
	}
	return best
}
