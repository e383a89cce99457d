package engine

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(RowSet{})
	if s.TotalStocks != 0 || s.UptrendCount != 0 || s.DowntrendCount != 0 ||
		s.AvgSentiment != 0 || s.StrongTrends != 0 || s.HighVolatility != 0 {
		t.Fatalf("empty summary not zeroed: %+v", s)
	}
	if s.TopPerformers == nil || len(s.TopPerformers) != 0 {
		t.Fatalf("top_performers must be an empty list, got %v", s.TopPerformers)
	}
}

func TestSummarizeEndToEnd(t *testing.T) {
	rs := RowSet{
		Columns: []string{"Symbol", "Trend", "ADX", "sentimentScore"},
		Rows: []Row{
			{"Symbol": "AAA", "Trend": "Uptrend", "ADX": "30", "sentimentScore": "1.5"},
			{"Symbol": "BBB", "Trend": "Downtrend", "ADX": "10", "sentimentScore": "-0.5"},
		},
	}
	s := Summarize(rs)
	if s.TotalStocks != 2 || s.UptrendCount != 1 || s.DowntrendCount != 1 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.AvgSentiment != 0.5 {
		t.Fatalf("avg_sentiment = %v", s.AvgSentiment)
	}
	if len(s.TopPerformers) != 2 || s.TopPerformers[0].Symbol != "AAA" {
		t.Fatalf("performers: %+v", s.TopPerformers)
	}
	// 0.6*30 + 20*1.5 = 48
	if s.TopPerformers[0].Score != 48 {
		t.Fatalf("score = %v", s.TopPerformers[0].Score)
	}
}

func TestSummarizeExactMatchOnly(t *testing.T) {
	// "Strong Uptrend" passes the substring filter but is NOT counted as
	// an uptrend by the summary, which wants an exact match.
	rs := RowSet{
		Columns: []string{"Trend"},
		Rows:    []Row{{"Trend": "Strong Uptrend"}, {"Trend": "uptrend"}, {"Trend": "UPTREND"}},
	}
	s := Summarize(rs)
	if s.UptrendCount != 2 {
		t.Fatalf("uptrend_count = %d, want 2", s.UptrendCount)
	}
}

func TestSummarizeMeanExcludesAbsents(t *testing.T) {
	rs := RowSet{
		Columns: []string{"sentiment_score"},
		Rows:    []Row{{"sentiment_score": "n/a"}, {"sentiment_score": "2"}},
	}
	s := Summarize(rs)
	if s.AvgSentiment != 2.0 {
		t.Fatalf("absents must be excluded from the mean, got %v", s.AvgSentiment)
	}
}

func TestSummarizeAllAbsentMeanDefaultsZero(t *testing.T) {
	rs := RowSet{
		Columns: []string{"sentimentScore"},
		Rows:    []Row{{"sentimentScore": ""}, {"sentimentScore": "x"}},
	}
	if s := Summarize(rs); s.AvgSentiment != 0 {
		t.Fatalf("got %v", s.AvgSentiment)
	}
}

func TestSummarizePerformersZeroFill(t *testing.T) {
	rs := RowSet{
		Columns: []string{"Symbol", "ADX", "sentimentScore"},
		Rows: []Row{
			{"Symbol": "AAA", "ADX": "n/a", "sentimentScore": "1"},
			{"Symbol": "BBB", "ADX": "50", "sentimentScore": "bad"},
		},
	}
	s := Summarize(rs)
	// BBB: 0.6*50 = 30 beats AAA: 20*1 = 20
	if s.TopPerformers[0].Symbol != "BBB" || s.TopPerformers[0].Score != 30 {
		t.Fatalf("performers: %+v", s.TopPerformers)
	}
	if s.TopPerformers[1].ADX != 0 {
		t.Fatalf("unparseable ADX must score as 0, got %v", s.TopPerformers[1].ADX)
	}
}

func TestSummarizeCapsAtFivePerformers(t *testing.T) {
	rs := RowSet{Columns: []string{"Symbol", "ADX"}}
	for i := 0; i < 8; i++ {
		rs.Rows = append(rs.Rows, Row{"Symbol": "S", "ADX": "10"})
	}
	if s := Summarize(rs); len(s.TopPerformers) != 5 {
		t.Fatalf("got %d performers", len(s.TopPerformers))
	}
}
