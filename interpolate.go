package sprout

import (
	"math"
	"strconv"
	"time"

	"github.com/tanema/gween/ease"
)

// Easing maps normalized time to normalized progress. Any gween easing works
// (ease.OutCubic, ease.InOutQuad, ...). A nil Easing is linear and is
// evaluated in float64 rather than through gween's float32 math.
type Easing = ease.TweenFunc

// Fraction returns elapsed/duration clamped to [0, 1]. A non-positive
// duration is treated as already complete.
func Fraction(elapsed, duration time.Duration) float64 {
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(duration)
}

// Interpolate returns the value a ramp from `from` to `to` shows after
// elapsed of duration. The end points are exact: elapsed <= 0 yields from and
// elapsed >= duration yields to, so frame jitter never leaves residue. Eased
// fractions are clamped to [0, 1]; overshooting easings such as ease.OutBack
// saturate at the end value instead of passing it.
func Interpolate(from, to float64, elapsed, duration time.Duration, easing Easing) float64 {
	if duration <= 0 || elapsed >= duration {
		return to
	}
	if elapsed <= 0 {
		return from
	}
	f := Fraction(elapsed, duration)
	if easing != nil {
		f = clamp01(float64(easing(float32(f), 0, 1, 1)))
	}
	return from + (to-from)*f
}

// FormatFixed renders v with exactly decimals digits after the point.
// Rounding happens here only; driver values stay unrounded.
func FormatFixed(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	// Avoid "-0" for tiny negative values that round to zero.
	if s[0] == '-' && isZeroDigits(s[1:]) {
		return s[1:]
	}
	return s
}

// Round rounds v to decimals places, half away from zero.
func Round(v float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func isZeroDigits(s string) bool {
	for _, r := range s {
		if r != '0' && r != '.' {
			return false
		}
	}
	return true
}
