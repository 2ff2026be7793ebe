package engine

import "math"

// round2 rounds to 2 decimals, half away from zero. All currency amounts and
// material quantities pass through here exactly once, at the edge where a
// value becomes part of a line item or total.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundQuarter rounds to the nearest quarter hour. Labor quantities are
// always expressed in quarter-hour steps.
func roundQuarter(v float64) float64 {
	return math.Round(v*4) / 4
}

// ceilDiv divides and rounds up, used for whole rental days and piece counts.
func ceilDiv(a, b float64) float64 {
	return math.Ceil(a / b)
}

// estimatedPerimeter approximates a zone's border length from its area,
// assuming a square footprint. Used for edging and pond rims when the wizard
// only collects the surface.
func estimatedPerimeter(area float64) float64 {
	return 4 * math.Sqrt(area)
}

// Round2 exposes the engine's currency rounding for callers that post-process
// line items (manual edits, import paths) and must stay consistent with it.
func Round2(v float64) float64 { return round2(v) }

// RoundQuarter exposes the quarter-hour rounding, see Round2.
func RoundQuarter(v float64) float64 { return roundQuarter(v) }
