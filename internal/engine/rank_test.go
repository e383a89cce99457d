package engine

import "testing"

func TestTopNByADX(t *testing.T) {
	got := TopN(fixtureRows(), "adx", 5)
	// CCC's ADX is unparseable and ranks last
	if !equalSymbols(symbols(got), []string{"AAA", "BBB", "CCC"}) {
		t.Fatalf("got %v", symbols(got))
	}
}

func TestTopNLimit(t *testing.T) {
	got := TopN(fixtureRows(), "adx", 1)
	if !equalSymbols(symbols(got), []string{"AAA"}) {
		t.Fatalf("got %v", symbols(got))
	}
	// n beyond the row count returns all rows, no padding
	got = TopN(fixtureRows(), "adx", 50)
	if got.Len() != 3 {
		t.Fatalf("got %d rows", got.Len())
	}
}

func TestTopNVolatilityOrdinal(t *testing.T) {
	got := TopN(fixtureRows(), "volatility", 3)
	if !equalSymbols(symbols(got), []string{"AAA", "CCC", "BBB"}) {
		t.Fatalf("high>moderate>low, got %v", symbols(got))
	}
}

func TestTopNVolatilityUnknownLabelRanksLast(t *testing.T) {
	rs := fixtureRows()
	rs.Rows[0]["Volatility"] = "extreme" // unrecognized ⇒ absent
	got := TopN(rs, "volatility", 3)
	if !equalSymbols(symbols(got), []string{"CCC", "BBB", "AAA"}) {
		t.Fatalf("got %v", symbols(got))
	}
}

func TestTopNStableTies(t *testing.T) {
	rs := RowSet{
		Columns: []string{"Symbol", "ADX"},
		Rows: []Row{
			{"Symbol": "X", "ADX": "10"},
			{"Symbol": "Y", "ADX": "10"},
			{"Symbol": "Z", "ADX": "10"},
		},
	}
	got := TopN(rs, "adx", 3)
	if !equalSymbols(symbols(got), []string{"X", "Y", "Z"}) {
		t.Fatalf("ties must keep source order, got %v", symbols(got))
	}
}

func TestTopNMissingColumnKeepsOrder(t *testing.T) {
	rs := RowSet{Columns: []string{"Symbol"}, Rows: []Row{{"Symbol": "A"}, {"Symbol": "B"}}}
	got := TopN(rs, "adx", 1)
	if !equalSymbols(symbols(got), []string{"A"}) {
		t.Fatalf("got %v", symbols(got))
	}
}
