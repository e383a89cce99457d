package engine

import "math"

// Sanitize replaces NaN and infinite numeric cells with nil so the row-set
// always serializes to valid JSON. Finite numbers and strings pass through
// untouched. Idempotent; the last transform before a row-set leaves the
// engine.
func Sanitize(rs RowSet) RowSet {
	if rs.IsEmpty() {
		return rs
	}
	rows := make([]Row, len(rs.Rows))
	for i, row := range rs.Rows {
		clean := make(Row, len(row))
		for k, v := range row {
			clean[k] = sanitizeCell(v)
		}
		rows[i] = clean
	}
	return rs.subset(rows)
}

func sanitizeCell(v any) any {
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	case float32:
		g := float64(f)
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return nil
		}
	}
	return v
}
