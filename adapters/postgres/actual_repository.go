package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pulseboard/domain/core"
	"pulseboard/models"
	"pulseboard/ports"
)

const actualColumns = `a.id, a.kpi_id, a.target_id, a.value, a.submitted_by, a.submitted_at, a.evidence, a.comments, a.status, a.reviewed_by, a.reviewed_at, a.review_comments`

// ActualRepositoryImpl implements ActualRepository for PostgreSQL
type ActualRepositoryImpl struct {
	db *sqlx.DB
}

// NewActualRepository creates a new PostgreSQL actual repository
func NewActualRepository(db *sqlx.DB) ports.ActualRepository {
	return &ActualRepositoryImpl{db: db}
}

// GetActual retrieves a submission by its ID
func (r *ActualRepositoryImpl) GetActual(ctx context.Context, id uuid.UUID) (*models.Actual, error) {
	var actual models.Actual
	err := r.db.GetContext(ctx, &actual, `
		SELECT `+actualColumns+`
		FROM actuals a
		WHERE a.id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrActualNotFound
		}
		return nil, err
	}
	return &actual, nil
}

// ListForPeriod returns all submissions for a period, most recent first
func (r *ActualRepositoryImpl) ListForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) ([]*models.Actual, error) {
	var actuals []*models.Actual
	err := r.db.SelectContext(ctx, &actuals, `
		SELECT `+actualColumns+`
		FROM actuals a
		JOIN targets t ON t.id = a.target_id
		WHERE a.kpi_id = $1 AND t.year = $2 AND t.quarter = $3
		ORDER BY a.submitted_at DESC
	`, kpiID, year, quarter)
	return actuals, err
}

// CurrentForPeriod returns the most recent non-rejected submission for a
// period. This is the value dashboards treat as "current".
func (r *ActualRepositoryImpl) CurrentForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) (*models.Actual, error) {
	var actual models.Actual
	err := r.db.GetContext(ctx, &actual, `
		SELECT `+actualColumns+`
		FROM actuals a
		JOIN targets t ON t.id = a.target_id
		WHERE a.kpi_id = $1 AND t.year = $2 AND t.quarter = $3 AND a.status != 'rejected'
		ORDER BY a.submitted_at DESC
		LIMIT 1
	`, kpiID, year, quarter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrActualNotFound
		}
		return nil, err
	}
	return &actual, nil
}

// CreateActual persists a new submission
func (r *ActualRepositoryImpl) CreateActual(ctx context.Context, actual *models.Actual) error {
	if actual.ID == uuid.Nil {
		actual.ID = core.NewID()
	}
	if actual.Status == "" {
		actual.Status = models.ReviewPending
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO actuals (id, kpi_id, target_id, value, submitted_by, submitted_at, evidence, comments, status, review_comments)
		VALUES (:id, :kpi_id, :target_id, :value, :submitted_by, :submitted_at, :evidence, :comments, :status, :review_comments)
	`, actual)
	return err
}

// UpdateReview persists a review-lifecycle transition
func (r *ActualRepositoryImpl) UpdateReview(ctx context.Context, actual *models.Actual) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE actuals
		SET status = :status, reviewed_by = :reviewed_by, reviewed_at = :reviewed_at, review_comments = :review_comments
		WHERE id = :id
	`, actual)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrActualNotFound
	}
	return nil
}
