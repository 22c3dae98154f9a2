package classification

import (
	"math"
	"strconv"
	"strings"
)

// PriceRange holds optional price bounds in minor units (cents).
type PriceRange struct {
	min, max       int
	hasMin, hasMax bool
}

// NewPriceRange creates a range with both bounds set, in minor units.
func NewPriceRange(minCents, maxCents int) PriceRange {
	return PriceRange{min: minCents, max: maxCents, hasMin: true, hasMax: true}
}

// Min returns the lower bound in minor units, if present.
func (p PriceRange) Min() (int, bool) { return p.min, p.hasMin }

// Max returns the upper bound in minor units, if present.
func (p PriceRange) Max() (int, bool) { return p.max, p.hasMax }

// IsEmpty reports whether neither bound is set.
func (p PriceRange) IsEmpty() bool { return !p.hasMin && !p.hasMax }

// PriceRangeFrom coerces a raw price_range array from model output into
// minor-unit bounds. One canonical rule for every call site: a bound is
// kept when it is a non-negative JSON number or a numeric string (an
// optional leading "$" is tolerated), and dropped otherwise. Models
// occasionally emit the whole range as a single "20-40" string; that form
// is split into both bounds first. Major units are converted to minor
// units (x100, rounded).
func PriceRangeFrom(raw []any) PriceRange {
	if len(raw) > 0 {
		if s, ok := raw[0].(string); ok && strings.Contains(s, "-") {
			parts := strings.SplitN(s, "-", 2)
			raw = []any{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
		}
	}

	var p PriceRange
	if len(raw) > 0 {
		p.min, p.hasMin = coerceMinorUnits(raw[0])
	}
	if len(raw) > 1 {
		p.max, p.hasMax = coerceMinorUnits(raw[1])
	}
	return p
}

// coerceMinorUnits converts one raw bound to integer minor units.
func coerceMinorUnits(v any) (int, bool) {
	var major float64
	switch t := v.(type) {
	case float64:
		major = t
	case int:
		major = float64(t)
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "$"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		major = f
	default:
		return 0, false
	}
	if major < 0 || math.IsNaN(major) || math.IsInf(major, 0) {
		return 0, false
	}
	return int(math.Round(major * 100)), true
}
