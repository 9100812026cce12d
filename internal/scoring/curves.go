package scoring

import "math"

// Hand-calibrated piecewise-linear curves mapping per-week rates to 0-100
// component scores. Anchor points come from observed healthy-couple
// frequencies: e.g. fifteen affection expressions a week saturates the
// affection curve, eight commitment signals saturate the commitment curve.

// affectionCurve scores expressed affection per week.
func affectionCurve(perWeek float64) float64 {
	switch {
	case perWeek >= 15:
		return 100
	case perWeek >= 7:
		return 70 + (perWeek-7)*3.75
	case perWeek >= 3:
		return 40 + (perWeek-3)*7.5
	default:
		return math.Max(20, perWeek*13)
	}
}

// commitmentCurve scores commitment signals per week. Attunement shares the
// same anchors.
func commitmentCurve(perWeek float64) float64 {
	switch {
	case perWeek >= 8:
		return 100
	case perWeek >= 4:
		return 70 + (perWeek-4)*7.5
	case perWeek >= 2:
		return 40 + (perWeek-2)*15
	default:
		return math.Max(20, perWeek*20)
	}
}

// appreciationCurve scores gratitude expressions per week.
func appreciationCurve(perWeek float64) float64 {
	switch {
	case perWeek >= 10:
		return 100
	case perWeek >= 5:
		return 70 + (perWeek-5)*6
	case perWeek >= 2:
		return 40 + (perWeek-2)*10
	default:
		return math.Max(20, perWeek*20)
	}
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
