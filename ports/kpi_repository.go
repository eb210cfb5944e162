package ports

import (
	"context"

	"pulseboard/models"

	"github.com/google/uuid"
)

// KPIRepository defines the interface for KPI data operations
type KPIRepository interface {
	// GetKPI retrieves a KPI by ID
	GetKPI(ctx context.Context, id uuid.UUID) (*models.KPI, error)

	// ListKPIs returns all KPIs, optionally filtered to active ones
	ListKPIs(ctx context.Context, activeOnly bool) ([]*models.KPI, error)

	// ListByDepartment returns the KPIs owned by a department
	ListByDepartment(ctx context.Context, departmentID uuid.UUID, activeOnly bool) ([]*models.KPI, error)

	// CreateKPI persists a new KPI
	CreateKPI(ctx context.Context, kpi *models.KPI) error

	// UpdateKPI applies administrative edits to an existing KPI
	UpdateKPI(ctx context.Context, kpi *models.KPI) error
}
