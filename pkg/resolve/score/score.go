// Package score decides whether an extraction is trustworthy enough to
// act on without asking the user anything.
package score

import (
	"ordermypdf-be/pkg/resolve/extract"
)

// Threshold is the minimum confidence for a direct resolution.
const Threshold = 0.7

// Component weights. Confidence is their clamped sum.
const (
	clarityWeight      = 0.3
	completenessWeight = 0.4
	ambiguityWeight    = 0.3
)

// Explicitness signal weights. The raw signal spans [-3, 5]; it is scaled
// into [0,1] and inverted to become the ambiguity score.
const (
	explicitNumbersBonus = 2.0
	explicitFormatBonus  = 2.0
	qualityKeywordBonus  = 1.0
	extraFamilyPenalty   = 1.0
	vagueKeywordPenalty  = 2.0

	rawFloor = -3.0
	rawSpan  = 8.0
)

// Verdict is the scored view of one extraction pass.
type Verdict struct {
	Confidence            float64
	IntentClarity         float64
	ParameterCompleteness float64
	Ambiguity             float64
}

// Confident reports whether the verdict clears the direct-resolution bar.
func (v Verdict) Confident() bool {
	return v.Confidence >= Threshold
}

// Evaluate scores one extraction result.
func Evaluate(res extract.Result) Verdict {
	v := Verdict{
		IntentClarity:         clarity(res),
		ParameterCompleteness: completeness(res),
		Ambiguity:             ambiguity(res),
	}
	v.Confidence = clamp(v.IntentClarity+v.ParameterCompleteness+ambiguityWeight*(1-v.Ambiguity), 0, 1)
	return v
}

func clarity(res extract.Result) float64 {
	switch {
	case len(res.Matches) == 0:
		return 0
	case len(res.Matches) == 1:
		return clarityWeight
	case res.ExplicitSequence:
		// Several families but the user spelled out the order.
		return clarityWeight - 0.05
	default:
		return clarityWeight / 2
	}
}

func completeness(res extract.Result) float64 {
	if len(res.Matches) == 0 {
		return 0
	}
	total := 0.0
	for _, m := range res.Matches {
		switch m.Status {
		case extract.StatusComplete:
			total += 1
		case extract.StatusPartial:
			total += 0.5
		}
	}
	return completenessWeight * total / float64(len(res.Matches))
}

func ambiguity(res extract.Result) float64 {
	raw := 0.0
	if res.ExplicitNumbers {
		raw += explicitNumbersBonus
	}
	if res.ExplicitFormat {
		raw += explicitFormatBonus
	}
	if res.QualityKeyword {
		raw += qualityKeywordBonus
	}
	if n := len(res.Matches); n > 1 {
		raw -= extraFamilyPenalty * float64(n-1)
	}
	if res.VagueKeyword {
		raw -= vagueKeywordPenalty
	}
	explicitness := clamp((raw-rawFloor)/rawSpan, 0, 1)
	return 1 - explicitness
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
