package engine

import "strings"

// Canonical column spellings seen across sheet sources. Candidates are tried
// in order; matching ignores case, underscores and spaces, so "Trend_Strength",
// "trendStrength" and "trend strength" all resolve to the same field.
var (
	SymbolColumns        = []string{"symbol", "stock"}
	TrendColumns         = []string{"trend"}
	TrendStrengthColumns = []string{"trend_strength", "trendstrength"}
	VolatilityColumns    = []string{"volatility"}
	SentimentColumns     = []string{"sentimentscore", "sentiment_score", "sentiment"}
	ADXColumns           = []string{"adx"}
	DateColumns          = []string{"date", "timestamp"}
)

// normalizeKey lower-cases a column name and strips underscores and spaces.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// ResolveColumn locates the literal column matching any of the candidate
// spellings. The first column in header order whose normalized name equals a
// normalized candidate wins. Absence is an expected outcome, not an error:
// callers treat the field as unavailable.
func ResolveColumn(rs RowSet, candidates ...string) (string, bool) {
	if len(rs.Columns) == 0 {
		return "", false
	}
	want := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		want[normalizeKey(c)] = true
	}
	for _, col := range rs.Columns {
		if want[normalizeKey(col)] {
			return col, true
		}
	}
	return "", false
}

// cellString renders a cell for textual matching. nil becomes "".
func cellString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return stringify(v)
	}
}
