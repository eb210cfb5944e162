package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"pulseboard/domain/core"
)

// ReviewStatus represents the review lifecycle state of a submission
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Actual is one submitted value for a KPI against a specific target period.
// The "current" actual for a (KPI, period) is the most recent non-rejected
// submission.
type Actual struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	KPIID          uuid.UUID      `json:"kpi_id" db:"kpi_id"`
	TargetID       uuid.UUID      `json:"target_id" db:"target_id"`
	Value          float64        `json:"value" db:"value"`
	SubmittedBy    uuid.UUID      `json:"submitted_by" db:"submitted_by"`
	SubmittedAt    time.Time      `json:"submitted_at" db:"submitted_at"`
	Evidence       pq.StringArray `json:"evidence" db:"evidence"`
	Comments       string         `json:"comments" db:"comments"`
	Status         ReviewStatus   `json:"status" db:"status"`
	ReviewedBy     *uuid.UUID     `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewComments string         `json:"review_comments,omitempty" db:"review_comments"`
}

// Approve moves a pending submission to approved. Reviewing twice is an error;
// the at-most-one-evaluation guarantee depends on it.
func (a *Actual) Approve(reviewer uuid.UUID, at time.Time, comments string) error {
	if a.Status != ReviewPending {
		return core.ErrActualReviewed
	}
	a.Status = ReviewApproved
	a.ReviewedBy = &reviewer
	a.ReviewedAt = &at
	a.ReviewComments = comments
	return nil
}

// Reject moves a pending submission to rejected
func (a *Actual) Reject(reviewer uuid.UUID, at time.Time, comments string) error {
	if a.Status != ReviewPending {
		return core.ErrActualReviewed
	}
	a.Status = ReviewRejected
	a.ReviewedBy = &reviewer
	a.ReviewedAt = &at
	a.ReviewComments = comments
	return nil
}
