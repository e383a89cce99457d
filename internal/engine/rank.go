package engine

import (
	"sort"
	"strings"
)

// volatility is ordinal by label, not by string: high > moderate > low.
var volatilityLevels = map[string]float64{
	"high":     3,
	"moderate": 2,
	"low":      1,
}

// TopN ranks rows descending by the named key and returns the first n.
// "volatility" ranks by mapped label level; any other key is coerced to a
// number. Absent values sort below every numeric value; ties keep original
// order. n larger than the row count returns everything.
func TopN(rs RowSet, sortKey string, n int) RowSet {
	if rs.IsEmpty() || n <= 0 {
		return rs.subset(nil)
	}

	col, keyOf := rankKey(rs, sortKey)
	if col == "" {
		// No such column: fall back to source order.
		if n > len(rs.Rows) {
			n = len(rs.Rows)
		}
		return rs.subset(rs.Rows[:n])
	}

	type ranked struct {
		row     Row
		value   float64
		present bool
	}
	items := make([]ranked, len(rs.Rows))
	for i, row := range rs.Rows {
		v, ok := keyOf(row[col])
		items[i] = ranked{row: row, value: v, present: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].present != items[j].present {
			return items[i].present // absents rank last
		}
		return items[i].value > items[j].value
	})

	if n > len(items) {
		n = len(items)
	}
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = items[i].row
	}
	return rs.subset(rows)
}

// rankKey resolves the sort column and its value extractor.
func rankKey(rs RowSet, sortKey string) (string, func(any) (float64, bool)) {
	switch normalizeKey(sortKey) {
	case "volatility":
		col, ok := ResolveColumn(rs, VolatilityColumns...)
		if !ok {
			return "", nil
		}
		return col, func(v any) (float64, bool) {
			level, ok := volatilityLevels[strings.ToLower(strings.TrimSpace(cellString(v)))]
			return level, ok
		}
	case "sentiment", "sentimentscore":
		col, ok := ResolveColumn(rs, SentimentColumns...)
		if !ok {
			return "", nil
		}
		return col, Numeric
	default:
		col, ok := ResolveColumn(rs, sortKey)
		if !ok {
			return "", nil
		}
		return col, Numeric
	}
}
