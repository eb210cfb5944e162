package models

import (
	"time"

	"github.com/google/uuid"
)

// Pillar is a strategic grouping that KPIs roll up under
type Pillar struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Department owns KPIs and appears in dashboard roll-ups
type Department struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DepartmentScore is the computed dashboard roll-up for one department and
// period. Composite is the equal-weight mean of constituent KPI progress
// values; Status is the majority vote of constituent statuses with the worse
// status winning ties. Trend is the composite delta against the immediately
// prior period.
type DepartmentScore struct {
	DepartmentID   uuid.UUID `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	Year           int       `json:"year"`
	Quarter        int       `json:"quarter"`
	Composite      float64   `json:"composite"`
	Status         string    `json:"status"`
	KPICount       int       `json:"kpi_count"`
	Trend          float64   `json:"trend"`
}

// OrganizationScore is the top-level roll-up across active departments
type OrganizationScore struct {
	Year        int               `json:"year"`
	Quarter     int               `json:"quarter"`
	Composite   float64           `json:"composite"`
	Departments []DepartmentScore `json:"departments"`
}
