package ports

import (
	"context"

	"pulseboard/models"

	"github.com/google/uuid"
)

// AlertFilter narrows alert listings
type AlertFilter struct {
	UnreadOnly     bool
	UnresolvedOnly bool
	KPIID          *uuid.UUID
	DepartmentID   *uuid.UUID
	Limit          int
}

// AlertRepository defines the interface for alert persistence. Alerts are
// created only by the alert engine and the anomaly detector.
type AlertRepository interface {
	// CreateAlert persists a new alert with is_read and is_resolved forced
	// to false
	CreateAlert(ctx context.Context, alert *models.Alert) error

	// GetAlert retrieves an alert by ID
	GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error)

	// ListAlerts returns alerts matching the filter, newest first
	ListAlerts(ctx context.Context, filter AlertFilter) ([]*models.Alert, error)

	// MarkRead flags an alert as read; repeat calls are no-ops
	MarkRead(ctx context.Context, id uuid.UUID) error

	// Resolve closes an alert, recording the resolver. Resolving an already
	// resolved alert fails with core.ErrAlertResolved.
	Resolve(ctx context.Context, id uuid.UUID, resolver uuid.UUID) error
}
