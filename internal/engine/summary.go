package engine

import (
	"sort"
	"strings"
)

// Performer score weights: ADX carries 0.6, sentiment is scaled into the
// same 0-20 band. Fixed design constants, not configuration.
const (
	adxWeight       = 0.6
	sentimentWeight = 20
	topPerformers   = 5
)

// TopPerformer is one ranked entry in the market summary.
type TopPerformer struct {
	Symbol    string  `json:"symbol"`
	ADX       float64 `json:"adx"`
	Sentiment float64 `json:"sentiment"`
	Trend     string  `json:"trend"`
	Score     float64 `json:"score"`
}

// Summary is the fixed-shape market aggregate, computed fresh per request.
type Summary struct {
	TotalStocks    int            `json:"total_stocks"`
	UptrendCount   int            `json:"uptrend_count"`
	DowntrendCount int            `json:"downtrend_count"`
	AvgSentiment   float64        `json:"avg_sentiment"`
	StrongTrends   int            `json:"strong_trends"`
	HighVolatility int            `json:"high_volatility_count"`
	TopPerformers  []TopPerformer `json:"top_performers"`
}

// Summarize aggregates a row-set into a Summary. Counting uses exact
// case-insensitive matches ("uptrend", "downtrend", "strong", "high"),
// stricter than the filter engine's substring semantics. The
// sentiment mean excludes absent values; if none parse, it reports 0.
func Summarize(rs RowSet) Summary {
	s := Summary{TopPerformers: []TopPerformer{}}
	if rs.IsEmpty() {
		return s
	}
	s.TotalStocks = len(rs.Rows)

	if col, ok := ResolveColumn(rs, TrendColumns...); ok {
		s.UptrendCount = countExact(rs, col, "uptrend")
		s.DowntrendCount = countExact(rs, col, "downtrend")
	}
	if col, ok := ResolveColumn(rs, TrendStrengthColumns...); ok {
		s.StrongTrends = countExact(rs, col, "strong")
	}
	if col, ok := ResolveColumn(rs, VolatilityColumns...); ok {
		s.HighVolatility = countExact(rs, col, "high")
	}
	if col, ok := ResolveColumn(rs, SentimentColumns...); ok {
		s.AvgSentiment = round2(meanNumeric(rs, col))
	}
	s.TopPerformers = performers(rs, topPerformers)
	return s
}

func countExact(rs RowSet, col, want string) int {
	n := 0
	for _, row := range rs.Rows {
		if strings.ToLower(strings.TrimSpace(cellString(row[col]))) == want {
			n++
		}
	}
	return n
}

// meanNumeric averages a column, skipping absent values in both sum and
// divisor. All-absent columns average to 0 by contract.
func meanNumeric(rs RowSet, col string) float64 {
	var sum float64
	var n int
	for _, row := range rs.Rows {
		if v, ok := Numeric(row[col]); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// performers ranks rows by the composite score. Unlike filtering, scoring
// zero-fills absent ADX/sentiment so a row with partial data still ranks.
func performers(rs RowSet, n int) []TopPerformer {
	adxCol, _ := ResolveColumn(rs, ADXColumns...)
	sentCol, _ := ResolveColumn(rs, SentimentColumns...)
	symCol, _ := ResolveColumn(rs, SymbolColumns...)
	trendCol, _ := ResolveColumn(rs, TrendColumns...)

	type scored struct {
		perf  TopPerformer
		score float64
	}
	items := make([]scored, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		var adx, sent float64
		if adxCol != "" {
			adx = NumericOrZero(row[adxCol])
		}
		if sentCol != "" {
			sent = NumericOrZero(row[sentCol])
		}
		p := TopPerformer{
			Symbol:    "N/A",
			ADX:       round2(adx),
			Sentiment: round2(sent),
			Trend:     "N/A",
			Score:     round2(adx*adxWeight + sent*sentimentWeight),
		}
		if symCol != "" {
			if sym := strings.TrimSpace(cellString(row[symCol])); sym != "" {
				p.Symbol = sym
			}
		}
		if trendCol != "" {
			if tr := strings.TrimSpace(cellString(row[trendCol])); tr != "" {
				p.Trend = tr
			}
		}
		items = append(items, scored{perf: p, score: adx*adxWeight + sent*sentimentWeight})
	}

	// stable sort keeps source order on ties
	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })
	if n > len(items) {
		n = len(items)
	}
	out := make([]TopPerformer, n)
	for i := range out {
		out[i] = items[i].perf
	}
	return out
}
