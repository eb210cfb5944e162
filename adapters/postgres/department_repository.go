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

// DepartmentRepositoryImpl implements DepartmentRepository for PostgreSQL
type DepartmentRepositoryImpl struct {
	db *sqlx.DB
}

// NewDepartmentRepository creates a new PostgreSQL department repository
func NewDepartmentRepository(db *sqlx.DB) ports.DepartmentRepository {
	return &DepartmentRepositoryImpl{db: db}
}

// GetDepartment retrieves a department by its ID
func (r *DepartmentRepositoryImpl) GetDepartment(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	var department models.Department
	err := r.db.GetContext(ctx, &department, `
		SELECT id, name, is_active, created_at, updated_at
		FROM departments
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &department, nil
}

// ListDepartments returns departments ordered by name
func (r *DepartmentRepositoryImpl) ListDepartments(ctx context.Context, activeOnly bool) ([]*models.Department, error) {
	var departments []*models.Department
	err := r.db.SelectContext(ctx, &departments, `
		SELECT id, name, is_active, created_at, updated_at
		FROM departments
		WHERE is_active OR NOT $1
		ORDER BY name
	`, activeOnly)
	return departments, err
}

// ListPillars returns all strategic pillars in sort order
func (r *DepartmentRepositoryImpl) ListPillars(ctx context.Context) ([]*models.Pillar, error) {
	var pillars []*models.Pillar
	err := r.db.SelectContext(ctx, &pillars, `
		SELECT id, name, description, sort_order, created_at
		FROM pillars
		ORDER BY sort_order, name
	`)
	return pillars, err
}
