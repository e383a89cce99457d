package engine

// Row is one instrument's latest signal snapshot: a loose mapping from the
// source's literal column name to a scalar cell (string, number, or nil).
type Row map[string]any

// RowSet is an ordered collection of rows sharing one header. Columns keeps
// the source's header order so column resolution is deterministic when two
// headers normalize to the same name.
type RowSet struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (rs RowSet) Len() int { return len(rs.Rows) }

// IsEmpty reports whether the row-set has no rows.
func (rs RowSet) IsEmpty() bool { return len(rs.Rows) == 0 }

// subset returns a RowSet sharing the header but holding only the given rows.
// Rows themselves are shared, never copied; engine functions treat them as
// read-only.
func (rs RowSet) subset(rows []Row) RowSet {
	return RowSet{Columns: rs.Columns, Rows: rows}
}

// Merge appends the rows of other, unioning headers in first-seen order.
// Used when a query spans every synced source.
func Merge(sets ...RowSet) RowSet {
	var out RowSet
	seen := make(map[string]bool)
	for _, rs := range sets {
		for _, c := range rs.Columns {
			if !seen[c] {
				seen[c] = true
				out.Columns = append(out.Columns, c)
			}
		}
		out.Rows = append(out.Rows, rs.Rows...)
	}
	return out
}

// FromRecords builds a RowSet from bare records, deriving the header from
// key order of appearance. Map iteration order is not stable, so sources
// that know their header should construct RowSet directly instead.
func FromRecords(records []map[string]any) RowSet {
	var rs RowSet
	seen := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				rs.Columns = append(rs.Columns, k)
			}
		}
		rs.Rows = append(rs.Rows, Row(rec))
	}
	return rs
}
