package engine

import "testing"

func fixtureRows() RowSet {
	return RowSet{
		Columns: []string{"Symbol", "Trend", "Trend_strength", "Volatility", "ADX", "sentimentScore"},
		Rows: []Row{
			{"Symbol": "AAA", "Trend": "Uptrend", "Trend_strength": "Strong", "Volatility": "High", "ADX": "30", "sentimentScore": "1.5"},
			{"Symbol": "BBB", "Trend": "Downtrend", "Trend_strength": "Weak", "Volatility": "Low", "ADX": "10", "sentimentScore": "-0.5"},
			{"Symbol": "CCC", "Trend": "Strong Uptrend", "Trend_strength": "Developing", "Volatility": "Moderate", "ADX": "n/a", "sentimentScore": ""},
		},
	}
}

func symbols(rs RowSet) []string {
	out := make([]string, 0, len(rs.Rows))
	for _, r := range rs.Rows {
		out = append(out, r["Symbol"].(string))
	}
	return out
}

func equalSymbols(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestApplyEmptySpecIsIdentity(t *testing.T) {
	rs := fixtureRows()
	got := Apply(rs, FilterSpec{})
	if !equalSymbols(symbols(got), symbols(rs)) {
		t.Fatalf("empty spec must return all rows, got %v", symbols(got))
	}
}

func TestApplyTrendSubstring(t *testing.T) {
	// substring semantics: "Strong Uptrend" matches trend=uptrend
	got := Apply(fixtureRows(), FilterSpec{Trend: "uptrend"})
	if !equalSymbols(symbols(got), []string{"AAA", "CCC"}) {
		t.Fatalf("got %v", symbols(got))
	}
}

func TestApplyUnresolvedColumnIsNoop(t *testing.T) {
	rs := RowSet{Columns: []string{"Symbol"}, Rows: []Row{{"Symbol": "AAA"}, {"Symbol": "BBB"}}}
	got := Apply(rs, FilterSpec{Volatility: "high"})
	if got.Len() != 2 {
		t.Fatalf("missing column must pass all rows, got %d", got.Len())
	}
}

func TestApplySentimentSign(t *testing.T) {
	got := Apply(fixtureRows(), FilterSpec{Sentiment: "positive"})
	if !equalSymbols(symbols(got), []string{"AAA"}) {
		t.Fatalf("positive: got %v", symbols(got))
	}
	got = Apply(fixtureRows(), FilterSpec{Sentiment: "negative"})
	if !equalSymbols(symbols(got), []string{"BBB"}) {
		t.Fatalf("negative: got %v", symbols(got))
	}
	// absent sentiment (CCC) matches neither sign; zero would not either
	rs := fixtureRows()
	rs.Rows[0]["sentimentScore"] = "0"
	got = Apply(rs, FilterSpec{Sentiment: "positive"})
	if got.Len() != 0 {
		t.Fatalf("zero must not match positive, got %v", symbols(got))
	}
}

func TestApplyThresholds(t *testing.T) {
	min := 20.0
	got := Apply(fixtureRows(), FilterSpec{MinADX: &min})
	if !equalSymbols(symbols(got), []string{"AAA"}) {
		t.Fatalf("min_adx: got %v", symbols(got))
	}

	maxSent := 0.0
	got = Apply(fixtureRows(), FilterSpec{MaxSentiment: &maxSent})
	if !equalSymbols(symbols(got), []string{"BBB"}) {
		t.Fatalf("max_sentiment: got %v", symbols(got))
	}
}

func TestApplyIntersection(t *testing.T) {
	min := 0.0
	got := Apply(fixtureRows(), FilterSpec{Trend: "uptrend", MinSentiment: &min})
	if !equalSymbols(symbols(got), []string{"AAA"}) {
		t.Fatalf("AND: got %v", symbols(got))
	}
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(RowSet{}, FilterSpec{Trend: "uptrend"})
	if got.Len() != 0 {
		t.Fatalf("empty in, empty out")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	rs := fixtureRows()
	before := rs.Len()
	_ = Apply(rs, FilterSpec{Trend: "downtrend"})
	if rs.Len() != before {
		t.Fatalf("input mutated")
	}
}
