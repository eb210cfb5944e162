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

const alertColumns = `id, type, severity, title, description, kpi_id, department_id, triggered_by, is_read, is_resolved, resolved_by, resolved_at, created_at`

// AlertRepositoryImpl implements AlertRepository for PostgreSQL
type AlertRepositoryImpl struct {
	db *sqlx.DB
}

// NewAlertRepository creates a new PostgreSQL alert repository
func NewAlertRepository(db *sqlx.DB) ports.AlertRepository {
	return &AlertRepositoryImpl{db: db}
}

// CreateAlert persists a new alert. Alerts always start unread and
// unresolved regardless of what the caller set.
func (r *AlertRepositoryImpl) CreateAlert(ctx context.Context, alert *models.Alert) error {
	if alert.ID == uuid.Nil {
		alert.ID = core.NewID()
	}
	alert.IsRead = false
	alert.IsResolved = false
	alert.ResolvedBy = nil
	alert.ResolvedAt = nil
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO alerts (id, type, severity, title, description, kpi_id, department_id, triggered_by, is_read, is_resolved, created_at)
		VALUES (:id, :type, :severity, :title, :description, :kpi_id, :department_id, :triggered_by, :is_read, :is_resolved, :created_at)
	`, alert)
	return err
}

// GetAlert retrieves an alert by its ID
func (r *AlertRepositoryImpl) GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	var alert models.Alert
	err := r.db.GetContext(ctx, &alert, `
		SELECT `+alertColumns+`
		FROM alerts
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// ListAlerts returns alerts matching the filter, newest first
func (r *AlertRepositoryImpl) ListAlerts(ctx context.Context, filter ports.AlertFilter) ([]*models.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE ($1 = FALSE OR is_read = FALSE)
		  AND ($2 = FALSE OR is_resolved = FALSE)
		  AND ($3::uuid IS NULL OR kpi_id = $3)
		  AND ($4::uuid IS NULL OR department_id = $4)
		ORDER BY created_at DESC
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT $5`

	var alerts []*models.Alert
	err := r.db.SelectContext(ctx, &alerts, query,
		filter.UnreadOnly, filter.UnresolvedOnly, filter.KPIID, filter.DepartmentID, limit)
	return alerts, err
}

// MarkRead flags an alert as read; repeat calls are no-ops
func (r *AlertRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE alerts SET is_read = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrAlertNotFound
	}
	return nil
}

// Resolve closes an alert, recording the resolver. The guarded UPDATE keeps
// resolution terminal without a read-modify-write race.
func (r *AlertRepositoryImpl) Resolve(ctx context.Context, id uuid.UUID, resolver uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE alerts
		SET is_resolved = TRUE, resolved_by = $2, resolved_at = NOW()
		WHERE id = $1 AND is_resolved = FALSE
	`, id, resolver)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	// Nothing updated: either the alert is gone or it was already resolved
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM alerts WHERE id = $1)`, id); err != nil {
		return err
	}
	if !exists {
		return core.ErrAlertNotFound
	}
	return core.ErrAlertResolved
}
