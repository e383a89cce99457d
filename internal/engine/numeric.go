package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Numeric coerces a cell to float64. The second return is false for empty
// cells, non-numeric strings and nil: the "absent" sentinel. Absent is
// distinct from zero: averages and thresholds must skip absent values, never
// count them as 0.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NumericOrZero coerces a cell to float64, zero-filling absents. Only the
// composite performer score tolerates missing data this way.
func NumericOrZero(v any) float64 {
	f, ok := Numeric(v)
	if !ok {
		return 0
	}
	return f
}

func stringify(v any) string {
	if f, ok := Numeric(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// round2 rounds to two decimal places, matching the summary contract.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
