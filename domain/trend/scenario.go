package trend

import (
	"fmt"
	"math"
	"strings"
)

// Impact classifies how a hypothetical input compares to current performance
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// A change inside +/-5 percent is noise, not a real shift
const impactCutoffPercent = 5.0

// Projection is the modeled outcome for one hypothetical input value
type Projection struct {
	Name             string  `json:"name"`
	InputValue       float64 `json:"input_value"`
	ChangePercent    float64 `json:"change_percent"`
	ProjectedOutcome float64 `json:"projected_outcome"`
	Impact           Impact  `json:"impact"`
	Confidence       float64 `json:"confidence"`
}

// Project models a single what-if input against the current value. The change
// ratio is defined as 0 when current is 0 (a deliberate choice over failing on
// division by zero). The projected outcome dampens the change to a tenth of
// its relative size; confidence shrinks with the size of the change, floored
// at 0.5.
func Project(name string, current, input float64) Projection {
	var changePercent float64
	if current != 0 {
		changePercent = (input - current) / current * 100
	}

	projected := input * (1 + changePercent/100*0.1)

	impact := ImpactNeutral
	switch {
	case changePercent > impactCutoffPercent:
		impact = ImpactPositive
	case changePercent < -impactCutoffPercent:
		impact = ImpactNegative
	}

	confidence := 1 - math.Abs(changePercent)/100
	if confidence < 0.5 {
		confidence = 0.5
	}

	return Projection{
		Name:             name,
		InputValue:       input,
		ChangePercent:    round2(changePercent),
		ProjectedOutcome: round2(projected),
		Impact:           impact,
		Confidence:       round2(confidence),
	}
}

// ScenarioRecommendations groups projected scenarios by impact and phrases
// a short recommendation per bucket. When nothing moves the needle either
// way a single generic suggestion is returned.
func ScenarioRecommendations(projections []Projection) []string {
	var positive, negative []string
	for _, p := range projections {
		switch p.Impact {
		case ImpactPositive:
			positive = append(positive, p.Name)
		case ImpactNegative:
			negative = append(negative, p.Name)
		}
	}

	var recs []string
	if len(positive) > 0 {
		recs = append(recs, fmt.Sprintf("Scenarios %s project improved performance; consider adopting them.", strings.Join(positive, ", ")))
	}
	if len(negative) > 0 {
		recs = append(recs, fmt.Sprintf("Scenarios %s project declining performance; avoid them or add mitigations.", strings.Join(negative, ", ")))
	}
	if len(recs) == 0 {
		recs = append(recs, "No scenario moves performance meaningfully; try more aggressive strategies.")
	}
	return recs
}
