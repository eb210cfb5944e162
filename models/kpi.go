package models

import (
	"time"

	"github.com/google/uuid"

	"pulseboard/domain/core"
)

// Frequency represents how often a KPI is reported
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Valid reports whether f is a known reporting frequency
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Polarity declares which direction of movement counts as improvement.
// Days-to-complete style KPIs are lower-is-better; most others are
// higher-is-better.
type Polarity string

const (
	HigherIsBetter Polarity = "higher_is_better"
	LowerIsBetter  Polarity = "lower_is_better"
)

// Valid reports whether p is a known polarity
func (p Polarity) Valid() bool {
	return p == HigherIsBetter || p == LowerIsBetter
}

// DataType represents the kind of value a KPI accepts
type DataType string

const (
	DataTypeNumeric DataType = "numeric"
	DataTypeBoolean DataType = "boolean"
)

// KPI represents a key performance indicator owned by a department under a
// strategic pillar. Immutable once created except administrative edits.
type KPI struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Unit         string    `json:"unit" db:"unit"`
	DataType     DataType  `json:"data_type" db:"data_type"`
	Frequency    Frequency `json:"frequency" db:"frequency"`
	Polarity     Polarity  `json:"polarity" db:"polarity"`
	DepartmentID uuid.UUID `json:"department_id" db:"department_id"`
	PillarID     uuid.UUID `json:"pillar_id" db:"pillar_id"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks structural invariants before persistence
func (k *KPI) Validate() error {
	if k.Name == "" {
		return core.NewValidationError("name", "must not be empty")
	}
	if !k.Frequency.Valid() {
		return core.ErrInvalidFrequency
	}
	if !k.Polarity.Valid() {
		return core.ErrInvalidPolarity
	}
	if k.DataType != DataTypeNumeric && k.DataType != DataTypeBoolean {
		return core.NewValidationError("data_type", "must be numeric or boolean")
	}
	return nil
}
