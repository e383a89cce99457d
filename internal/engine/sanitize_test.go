package engine

import (
	"math"
	"testing"
)

func TestSanitizeReplacesNonFinite(t *testing.T) {
	rs := RowSet{
		Columns: []string{"a", "b", "c", "d"},
		Rows: []Row{
			{"a": math.NaN(), "b": math.Inf(1), "c": 1.5, "d": "text"},
		},
	}
	got := Sanitize(rs)
	row := got.Rows[0]
	if row["a"] != nil || row["b"] != nil {
		t.Fatalf("NaN/Inf must become nil: %v", row)
	}
	if row["c"] != 1.5 || row["d"] != "text" {
		t.Fatalf("finite values must be untouched: %v", row)
	}
	// input row untouched
	if v, ok := rs.Rows[0]["a"].(float64); !ok || !math.IsNaN(v) {
		t.Fatalf("input mutated")
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	rs := RowSet{
		Columns: []string{"a", "b"},
		Rows:    []Row{{"a": math.Inf(-1), "b": "ok"}},
	}
	once := Sanitize(rs)
	twice := Sanitize(once)
	if twice.Rows[0]["a"] != once.Rows[0]["a"] || twice.Rows[0]["b"] != once.Rows[0]["b"] {
		t.Fatalf("sanitize not idempotent")
	}
}

func TestMerge(t *testing.T) {
	a := RowSet{Columns: []string{"Symbol", "Trend"}, Rows: []Row{{"Symbol": "AAA"}}}
	b := RowSet{Columns: []string{"Symbol", "ADX"}, Rows: []Row{{"Symbol": "BBB"}}}
	m := Merge(a, b)
	if m.Len() != 2 {
		t.Fatalf("rows = %d", m.Len())
	}
	if len(m.Columns) != 3 || m.Columns[0] != "Symbol" || m.Columns[2] != "ADX" {
		t.Fatalf("columns = %v", m.Columns)
	}
}
