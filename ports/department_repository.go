package ports

import (
	"context"

	"pulseboard/models"

	"github.com/google/uuid"
)

// DepartmentRepository defines the interface for department and pillar lookups
type DepartmentRepository interface {
	// GetDepartment retrieves a department by ID
	GetDepartment(ctx context.Context, id uuid.UUID) (*models.Department, error)

	// ListDepartments returns departments, optionally filtered to active ones
	ListDepartments(ctx context.Context, activeOnly bool) ([]*models.Department, error)

	// ListPillars returns all strategic pillars in sort order
	ListPillars(ctx context.Context) ([]*models.Pillar, error)
}
