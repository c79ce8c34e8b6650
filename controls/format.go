package controls

import (
	"math"
	"strconv"
	"strings"

	"github.com/zoobzio/tweak"
)

// NumberFormatter formats numbers with a fixed count of decimals, clamped
// to [0, 20].
func NumberFormatter(digits int) func(float64) string {
	digits = max(0, min(digits, 20))
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}
}

// NumberToString formats v with the shortest exact representation.
func NumberToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber parses user-typed number text. NaN and infinities are
// rejected.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// BoolToString formats a boolean option value.
func BoolToString(v bool) string {
	return strconv.FormatBool(v)
}

// DecimalDigits returns the number of decimals in v's shortest
// representation.
func DecimalDigits(v float64) int {
	s := NumberToString(v)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// SuitableDigits picks the decimals shown for a number: those of the step
// when c contains one, otherwise those of raw with a minimum of two.
func SuitableDigits(c tweak.Constraint[float64], raw float64) int {
	if s, ok := tweak.FindConstraint[*tweak.Step](c); ok {
		return DecimalDigits(s.Step)
	}
	return max(DecimalDigits(raw), 2)
}

// BaseStep returns the keyboard step for a number: the step constraint's
// step, or 1.
func BaseStep(c tweak.Constraint[float64]) float64 {
	if s, ok := tweak.FindConstraint[*tweak.Step](c); ok && s.Step > 0 {
		return s.Step
	}
	return 1
}

// SliderBounds returns the closed range a slider spans, if c has one.
func SliderBounds(c tweak.Constraint[float64]) (lo, hi float64, ok bool) {
	if r, found := tweak.FindConstraint[*tweak.DefiniteRange[float64]](c); found {
		return r.Min(), r.Max(), true
	}
	if r, found := tweak.FindConstraint[*tweak.Range[float64]](c); found {
		return r.Bounds()
	}
	return 0, 0, false
}
