package models

import (
	"time"

	"github.com/google/uuid"

	"pulseboard/domain/core"
)

// AlertType classifies what triggered an alert
type AlertType string

const (
	AlertThresholdBreach   AlertType = "threshold_breach"
	AlertTargetExceeded    AlertType = "target_exceeded"
	AlertAnomalyDetected   AlertType = "anomaly_detected"
	AlertOverdueSubmission AlertType = "overdue_submission"
)

// AlertSeverity ranks how urgent an alert is
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is a derived record created only by the alert engine or the anomaly
// detector, never directly by users. Lifecycle: created unread+unresolved,
// mark-read is idempotent, resolve is terminal.
type Alert struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Type         AlertType     `json:"type" db:"type"`
	Severity     AlertSeverity `json:"severity" db:"severity"`
	Title        string        `json:"title" db:"title"`
	Description  string        `json:"description" db:"description"`
	KPIID        *uuid.UUID    `json:"kpi_id,omitempty" db:"kpi_id"`
	DepartmentID *uuid.UUID    `json:"department_id,omitempty" db:"department_id"`
	TriggeredBy  *uuid.UUID    `json:"triggered_by,omitempty" db:"triggered_by"`
	IsRead       bool          `json:"is_read" db:"is_read"`
	IsResolved   bool          `json:"is_resolved" db:"is_resolved"`
	ResolvedBy   *uuid.UUID    `json:"resolved_by,omitempty" db:"resolved_by"`
	ResolvedAt   *time.Time    `json:"resolved_at,omitempty" db:"resolved_at"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// MarkRead flags the alert as read. Idempotent.
func (a *Alert) MarkRead() {
	a.IsRead = true
}

// Resolve closes the alert, recording who resolved it. Terminal: resolving an
// already-resolved alert is an error.
func (a *Alert) Resolve(resolver uuid.UUID, at time.Time) error {
	if a.IsResolved {
		return core.ErrAlertResolved
	}
	a.IsResolved = true
	a.ResolvedBy = &resolver
	a.ResolvedAt = &at
	return nil
}
