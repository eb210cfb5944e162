package models

import (
	"time"

	"github.com/google/uuid"

	"pulseboard/domain/core"
)

// Threshold is the red/amber/green cutoff triple, expressed as percent-of-target
// values. For higher-is-better KPIs green >= amber >= red; for lower-is-better
// the ordering inverts.
type Threshold struct {
	Green float64 `json:"green" db:"threshold_green"`
	Amber float64 `json:"amber" db:"threshold_amber"`
	Red   float64 `json:"red" db:"threshold_red"`
}

// ValidateFor checks the cutoff ordering against the KPI's polarity
func (t Threshold) ValidateFor(polarity Polarity) error {
	switch polarity {
	case HigherIsBetter:
		if t.Green < t.Amber || t.Amber < t.Red {
			return core.NewValidationError("threshold", "expected green >= amber >= red")
		}
	case LowerIsBetter:
		if t.Green > t.Amber || t.Amber > t.Red {
			return core.NewValidationError("threshold", "expected green <= amber <= red")
		}
	default:
		return core.ErrInvalidPolarity
	}
	return nil
}

// Target is the expected value for one (KPI, year, optional quarter) period.
// Quarter 0 means a yearly target. Immutable once actuals reference it, other
// than administrative correction.
type Target struct {
	ID      uuid.UUID `json:"id" db:"id"`
	KPIID   uuid.UUID `json:"kpi_id" db:"kpi_id"`
	Year    int       `json:"year" db:"year"`
	Quarter int       `json:"quarter" db:"quarter"`
	Value   float64   `json:"value" db:"value"`
	// Embedded so sqlx maps the threshold_* columns flat
	Threshold
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
