package pricing

import "math"

// roundMRU rounds a final monetary amount half away from zero. Intermediate
// values are never rounded; only the end result of a calculation passes
// through here. Non-finite values degrade to 0 so callers never see NaN.
func roundMRU(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v)
}

// sanitizeAmount maps malformed monetary input (NaN, infinite, negative) to
// zero. The resolver is total: bad input degrades, it never errors.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
