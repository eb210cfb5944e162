package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pulseboard/domain/core"
	"pulseboard/models"
	"pulseboard/ports"
)

const kpiColumns = `id, name, description, unit, data_type, frequency, polarity, department_id, pillar_id, is_active, created_at, updated_at`

// KPIRepositoryImpl implements KPIRepository for PostgreSQL
type KPIRepositoryImpl struct {
	db *sqlx.DB
}

// NewKPIRepository creates a new PostgreSQL KPI repository
func NewKPIRepository(db *sqlx.DB) ports.KPIRepository {
	return &KPIRepositoryImpl{db: db}
}

// GetKPI retrieves a KPI by its ID
func (r *KPIRepositoryImpl) GetKPI(ctx context.Context, id uuid.UUID) (*models.KPI, error) {
	var kpi models.KPI
	err := r.db.GetContext(ctx, &kpi, `
		SELECT `+kpiColumns+`
		FROM kpis
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrKPINotFound
		}
		return nil, err
	}
	return &kpi, nil
}

// ListKPIs returns all KPIs, newest first
func (r *KPIRepositoryImpl) ListKPIs(ctx context.Context, activeOnly bool) ([]*models.KPI, error) {
	var kpis []*models.KPI
	err := r.db.SelectContext(ctx, &kpis, `
		SELECT `+kpiColumns+`
		FROM kpis
		WHERE is_active OR NOT $1
		ORDER BY created_at DESC
	`, activeOnly)
	return kpis, err
}

// ListByDepartment returns the KPIs owned by a department
func (r *KPIRepositoryImpl) ListByDepartment(ctx context.Context, departmentID uuid.UUID, activeOnly bool) ([]*models.KPI, error) {
	var kpis []*models.KPI
	err := r.db.SelectContext(ctx, &kpis, `
		SELECT `+kpiColumns+`
		FROM kpis
		WHERE department_id = $1 AND (is_active OR NOT $2)
		ORDER BY name
	`, departmentID, activeOnly)
	return kpis, err
}

// CreateKPI persists a new KPI
func (r *KPIRepositoryImpl) CreateKPI(ctx context.Context, kpi *models.KPI) error {
	if err := kpi.Validate(); err != nil {
		return err
	}
	if kpi.ID == uuid.Nil {
		kpi.ID = core.NewID()
	}
	now := time.Now().UTC()
	kpi.CreatedAt = now
	kpi.UpdatedAt = now
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO kpis (id, name, description, unit, data_type, frequency, polarity, department_id, pillar_id, is_active, created_at, updated_at)
		VALUES (:id, :name, :description, :unit, :data_type, :frequency, :polarity, :department_id, :pillar_id, :is_active, :created_at, :updated_at)
	`, kpi)
	return err
}

// UpdateKPI applies administrative edits to an existing KPI
func (r *KPIRepositoryImpl) UpdateKPI(ctx context.Context, kpi *models.KPI) error {
	if err := kpi.Validate(); err != nil {
		return err
	}
	kpi.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE kpis
		SET name = :name, description = :description, unit = :unit, data_type = :data_type,
		    frequency = :frequency, polarity = :polarity, is_active = :is_active, updated_at = :updated_at
		WHERE id = :id
	`, kpi)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrKPINotFound
	}
	return nil
}
