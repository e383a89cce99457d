package engine

import "fmt"

// Insights renders a Summary as short human-readable observations. This
// is the cheap, deterministic counterpart to the chat endpoint: no model
// call, just the aggregate restated.
func Insights(s Summary) []string {
	if s.TotalStocks == 0 {
		return []string{"No signal data available; run a sync first."}
	}

	out := []string{
		fmt.Sprintf("Tracking %d stocks.", s.TotalStocks),
	}

	switch {
	case s.UptrendCount > s.DowntrendCount:
		out = append(out, fmt.Sprintf("Market skews bullish: %d uptrend vs %d downtrend.", s.UptrendCount, s.DowntrendCount))
	case s.DowntrendCount > s.UptrendCount:
		out = append(out, fmt.Sprintf("Market skews bearish: %d downtrend vs %d uptrend.", s.DowntrendCount, s.UptrendCount))
	default:
		out = append(out, fmt.Sprintf("Market is balanced: %d uptrend, %d downtrend.", s.UptrendCount, s.DowntrendCount))
	}

	out = append(out, fmt.Sprintf("Average sentiment is %.2f.", s.AvgSentiment))

	if s.StrongTrends > 0 {
		out = append(out, fmt.Sprintf("%d stocks show strong trends.", s.StrongTrends))
	}
	if s.HighVolatility > 0 {
		out = append(out, fmt.Sprintf("%d stocks are in high volatility.", s.HighVolatility))
	}
	if len(s.TopPerformers) > 0 {
		p := s.TopPerformers[0]
		out = append(out, fmt.Sprintf("Top performer: %s (score %.2f, %s).", p.Symbol, p.Score, p.Trend))
	}
	return out
}
