package ports

import (
	"context"

	"pulseboard/models"

	"github.com/google/uuid"
)

// TargetRepository defines the interface for period target operations
type TargetRepository interface {
	// GetTarget retrieves a target by ID
	GetTarget(ctx context.Context, id uuid.UUID) (*models.Target, error)

	// GetForPeriod returns the target for a fully specified (kpi, year,
	// quarter) period. Quarter 0 addresses a yearly target. Missing targets
	// surface as core.ErrTargetNotFound.
	GetForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) (*models.Target, error)

	// ListForKPI returns all targets recorded for a KPI, ordered by period
	ListForKPI(ctx context.Context, kpiID uuid.UUID) ([]*models.Target, error)

	// CreateTarget persists a new target; the (kpi, year, quarter) triple is
	// unique
	CreateTarget(ctx context.Context, target *models.Target) error
}
