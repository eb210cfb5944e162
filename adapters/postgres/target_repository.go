package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pulseboard/domain/core"
	"pulseboard/models"
	"pulseboard/ports"
)

const targetColumns = `id, kpi_id, year, quarter, value, threshold_green, threshold_amber, threshold_red, created_at, updated_at`

// TargetRepositoryImpl implements TargetRepository for PostgreSQL
type TargetRepositoryImpl struct {
	db *sqlx.DB
}

// NewTargetRepository creates a new PostgreSQL target repository
func NewTargetRepository(db *sqlx.DB) ports.TargetRepository {
	return &TargetRepositoryImpl{db: db}
}

// GetTarget retrieves a target by its ID
func (r *TargetRepositoryImpl) GetTarget(ctx context.Context, id uuid.UUID) (*models.Target, error) {
	var target models.Target
	err := r.db.GetContext(ctx, &target, `
		SELECT `+targetColumns+`
		FROM targets
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrTargetNotFound
		}
		return nil, err
	}
	return &target, nil
}

// GetForPeriod returns the target for a fully specified period
func (r *TargetRepositoryImpl) GetForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) (*models.Target, error) {
	var target models.Target
	err := r.db.GetContext(ctx, &target, `
		SELECT `+targetColumns+`
		FROM targets
		WHERE kpi_id = $1 AND year = $2 AND quarter = $3
	`, kpiID, year, quarter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrTargetNotFound
		}
		return nil, err
	}
	return &target, nil
}

// ListForKPI returns all targets for a KPI ordered by period
func (r *TargetRepositoryImpl) ListForKPI(ctx context.Context, kpiID uuid.UUID) ([]*models.Target, error) {
	var targets []*models.Target
	err := r.db.SelectContext(ctx, &targets, `
		SELECT `+targetColumns+`
		FROM targets
		WHERE kpi_id = $1
		ORDER BY year, quarter
	`, kpiID)
	return targets, err
}

// CreateTarget persists a new target. The (kpi, year, quarter) triple is
// unique; a duplicate surfaces as a validation error rather than a raw
// constraint violation.
func (r *TargetRepositoryImpl) CreateTarget(ctx context.Context, target *models.Target) error {
	if target.ID == uuid.Nil {
		target.ID = core.NewID()
	}
	now := time.Now().UTC()
	target.CreatedAt = now
	target.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO targets (id, kpi_id, year, quarter, value, threshold_green, threshold_amber, threshold_red, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, target.ID, target.KPIID, target.Year, target.Quarter, target.Value,
		target.Threshold.Green, target.Threshold.Amber, target.Threshold.Red,
		target.CreatedAt, target.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return core.NewValidationError("target", "a target already exists for this period")
		}
		return err
	}
	return nil
}
