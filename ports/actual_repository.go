package ports

import (
	"context"

	"pulseboard/models"

	"github.com/google/uuid"
)

// ActualRepository defines the interface for submission data operations
type ActualRepository interface {
	// GetActual retrieves a submission by ID
	GetActual(ctx context.Context, id uuid.UUID) (*models.Actual, error)

	// ListForPeriod returns all submissions for a (kpi, year, quarter)
	// period, most recent first
	ListForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) ([]*models.Actual, error)

	// CurrentForPeriod returns the most recent non-rejected submission for a
	// period, or core.ErrActualNotFound when the period has none
	CurrentForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) (*models.Actual, error)

	// CreateActual persists a new submission
	CreateActual(ctx context.Context, actual *models.Actual) error

	// UpdateReview persists a review-lifecycle transition
	UpdateReview(ctx context.Context, actual *models.Actual) error
}
