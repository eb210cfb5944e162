// Package eval holds the pure evaluation core: period resolution and
// red/amber/green threshold classification. No I/O, no clock reads.
package eval

import (
	"time"

	"pulseboard/domain/core"
	"pulseboard/models"
)

// Period identifies a reporting period. Quarter 0 means the period is the
// whole year (yearly frequency).
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter,omitempty"`
}

// HasQuarter reports whether the period is quarter-scoped
func (p Period) HasQuarter() bool {
	return p.Quarter > 0
}

// Before reports whether p is strictly earlier than q
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Quarter < q.Quarter
}

// Next returns the immediately following period at the same granularity
func (p Period) Next() Period {
	if !p.HasQuarter() {
		return Period{Year: p.Year + 1}
	}
	if p.Quarter == 4 {
		return Period{Year: p.Year + 1, Quarter: 1}
	}
	return Period{Year: p.Year, Quarter: p.Quarter + 1}
}

// Prev returns the immediately preceding period at the same granularity
func (p Period) Prev() Period {
	if !p.HasQuarter() {
		return Period{Year: p.Year - 1}
	}
	if p.Quarter == 1 {
		return Period{Year: p.Year - 1, Quarter: 4}
	}
	return Period{Year: p.Year, Quarter: p.Quarter - 1}
}

// ResolvePeriod maps a calendar date to the applicable reporting period for
// the given frequency. Monthly and quarterly KPIs report per quarter
// (quarter = ceil(month/3)); yearly KPIs have no quarter.
func ResolvePeriod(date time.Time, frequency models.Frequency) (Period, error) {
	switch frequency {
	case models.FrequencyMonthly, models.FrequencyQuarterly:
		quarter := (int(date.Month()) + 2) / 3
		return Period{Year: date.Year(), Quarter: quarter}, nil
	case models.FrequencyYearly:
		return Period{Year: date.Year()}, nil
	default:
		return Period{}, core.ErrInvalidFrequency
	}
}
