package engine

import "strings"

// FilterSpec names the predicates a query may constrain. A nil/empty field
// means "no constraint on that field", never "reject all". Unrecognized keys
// coming off the wire are dropped before they reach here.
type FilterSpec struct {
	Trend         string   `json:"trend,omitempty"`
	TrendStrength string   `json:"trend_strength,omitempty"`
	Volatility    string   `json:"volatility,omitempty"`
	Sentiment     string   `json:"sentiment,omitempty"` // "positive" or "negative"
	MinSentiment  *float64 `json:"min_sentiment,omitempty"`
	MaxSentiment  *float64 `json:"max_sentiment,omitempty"`
	MinADX        *float64 `json:"min_adx,omitempty"`
}

// IsEmpty reports whether the spec constrains anything.
func (s FilterSpec) IsEmpty() bool {
	return s.Trend == "" && s.TrendStrength == "" && s.Volatility == "" &&
		s.Sentiment == "" && s.MinSentiment == nil && s.MaxSentiment == nil && s.MinADX == nil
}

// Apply returns the subset of rows matching every present predicate, in the
// original order. Textual predicates are case-insensitive substring matches,
// so "Strong Uptrend" satisfies trend="uptrend". A predicate whose column
// cannot be resolved is a no-op rather than an error; numeric predicates
// exclude rows whose value is absent. An empty spec is the identity.
func Apply(rs RowSet, spec FilterSpec) RowSet {
	if rs.IsEmpty() || spec.IsEmpty() {
		return rs
	}

	out := rs
	out = applySubstring(out, spec.Trend, TrendColumns)
	out = applySubstring(out, spec.TrendStrength, TrendStrengthColumns)
	out = applySubstring(out, spec.Volatility, VolatilityColumns)
	out = applySentimentSign(out, spec.Sentiment)
	out = applyThreshold(out, spec.MinSentiment, SentimentColumns, false)
	out = applyThreshold(out, spec.MaxSentiment, SentimentColumns, true)
	out = applyThreshold(out, spec.MinADX, ADXColumns, false)
	return out
}

func applySubstring(rs RowSet, want string, candidates []string) RowSet {
	if want == "" || rs.IsEmpty() {
		return rs
	}
	col, ok := ResolveColumn(rs, candidates...)
	if !ok {
		return rs
	}
	want = strings.ToLower(want)
	kept := make([]Row, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		if strings.Contains(strings.ToLower(cellString(row[col])), want) {
			kept = append(kept, row)
		}
	}
	return rs.subset(kept)
}

func applySentimentSign(rs RowSet, sign string) RowSet {
	if rs.IsEmpty() {
		return rs
	}
	sign = strings.ToLower(sign)
	if sign != "positive" && sign != "negative" {
		return rs
	}
	col, ok := ResolveColumn(rs, SentimentColumns...)
	if !ok {
		return rs
	}
	kept := make([]Row, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		v, present := Numeric(row[col])
		if !present {
			continue // absent never matches a sign
		}
		if (sign == "positive" && v > 0) || (sign == "negative" && v < 0) {
			kept = append(kept, row)
		}
	}
	return rs.subset(kept)
}

func applyThreshold(rs RowSet, limit *float64, candidates []string, isMax bool) RowSet {
	if limit == nil || rs.IsEmpty() {
		return rs
	}
	col, ok := ResolveColumn(rs, candidates...)
	if !ok {
		return rs
	}
	kept := make([]Row, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		v, present := Numeric(row[col])
		if !present {
			continue // absent never satisfies an inequality
		}
		if (isMax && v <= *limit) || (!isMax && v >= *limit) {
			kept = append(kept, row)
		}
	}
	return rs.subset(kept)
}
