package eval

import (
	"math"

	"pulseboard/domain/core"
	"pulseboard/models"
)

// Status is the three-band classification of a submitted value
type Status string

const (
	StatusGreen Status = "green"
	StatusAmber Status = "amber"
	StatusRed   Status = "red"
)

// Rank orders statuses from worst (0) to best (2), used by roll-up voting
func (s Status) Rank() int {
	switch s {
	case StatusGreen:
		return 2
	case StatusAmber:
		return 1
	default:
		return 0
	}
}

// Evaluation is the outcome of comparing an actual value against a target
type Evaluation struct {
	Status   Status  `json:"status"`
	Progress float64 `json:"progress"`
}

// Evaluate classifies an actual value against a target and its threshold
// triple. Cutoffs are percent-of-target: for higher-is-better, a value at or
// above green% of target is green, at or above amber% is amber, otherwise
// red. Lower-is-better inverts the comparisons. Progress is the percent of
// target achieved, clamped to [0, 100]; for lower-is-better it is
// target/actual so that beating a "fewer days" target still reads as 100.
//
// A zero target is an error unless the actual is also zero, which counts as
// fully met.
func Evaluate(actual, target float64, threshold models.Threshold, polarity models.Polarity) (Evaluation, error) {
	if !polarity.Valid() {
		return Evaluation{}, core.ErrInvalidPolarity
	}
	if target == 0 {
		if actual == 0 {
			return Evaluation{Status: StatusGreen, Progress: 100}, nil
		}
		return Evaluation{}, core.ErrDivisionByZero
	}

	greenCut := threshold.Green * target / 100
	amberCut := threshold.Amber * target / 100

	var status Status
	var progress float64
	switch polarity {
	case models.HigherIsBetter:
		switch {
		case actual >= greenCut:
			status = StatusGreen
		case actual >= amberCut:
			status = StatusAmber
		default:
			status = StatusRed
		}
		progress = actual / target * 100
	case models.LowerIsBetter:
		switch {
		case actual <= greenCut:
			status = StatusGreen
		case actual <= amberCut:
			status = StatusAmber
		default:
			status = StatusRed
		}
		if actual == 0 {
			progress = 100
		} else {
			progress = target / actual * 100
		}
	}

	progress = math.Round(progress)
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}

	return Evaluation{Status: status, Progress: progress}, nil
}
