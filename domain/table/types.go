// Package table holds the in-memory tabular types the pipeline flows
// through. All of them are built once at startup and never mutated.
package table

import (
	"math"
	"strings"
)

// RawRow is one record as read from the source file, keyed by header name.
type RawRow map[string]string

// RawTable is the dataset exactly as loaded: header order plus string cells.
type RawTable struct {
	Headers []string
	Rows    []RawRow
}

// RowCount returns the number of data rows.
func (t *RawTable) RowCount() int {
	return len(t.Rows)
}

// HasColumn reports whether the header row contains name (exact,
// case-sensitive match).
func (t *RawTable) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// CleanedTable is the RawTable after numeric coercion: same row count, same
// column set, with numeric-role columns stored as float64 slices (NaN marks a
// missing value) and everything else kept as strings.
type CleanedTable struct {
	Headers []string
	NumRows int
	Strings map[string][]string
	Numbers map[string][]float64
}

// RowCount returns the number of data rows.
func (t *CleanedTable) RowCount() int {
	return t.NumRows
}

// IsNumericColumn reports whether name was coerced to a numeric column.
func (t *CleanedTable) IsNumericColumn(name string) bool {
	_, ok := t.Numbers[name]
	return ok
}

// Missing is the missing-value marker for coerced numeric cells.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether a coerced cell holds the missing-value marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// GroupIndex is a partition of table rows by the values of one string column.
// Keys preserves first-appearance order, which is the ordering contract for
// chart data.
type GroupIndex struct {
	Keys []string
	Rows map[string][]int
}

// GroupBy partitions rows by the given string column. Rows whose key cell is
// empty or whitespace-only are treated as missing-key rows and join no
// partition.
func (t *CleanedTable) GroupBy(column string) GroupIndex {
	idx := GroupIndex{Rows: make(map[string][]int)}
	values, ok := t.Strings[column]
	if !ok {
		return idx
	}

	for i, v := range values {
		key := strings.TrimSpace(v)
		if key == "" {
			continue
		}
		if _, seen := idx.Rows[key]; !seen {
			idx.Keys = append(idx.Keys, key)
		}
		idx.Rows[key] = append(idx.Rows[key], i)
	}
	return idx
}

// SummaryRow is one group's statistics, cell-aligned with
// SummaryTable.Columns. A nil cell is a missing statistic.
type SummaryRow struct {
	Key   string     `json:"key"`
	Cells []*float64 `json:"cells"`
}

// SummaryTable is the grouped descriptive-statistics table: one row per
// distinct group key, columns being the sanitized field x statistic
// cross-product. Rows are sorted lexically by key.
type SummaryTable struct {
	KeyName string       `json:"key_name"`
	Columns []string     `json:"columns"`
	Rows    []SummaryRow `json:"rows"`
}

// GroupCount returns the number of distinct groups.
func (t *SummaryTable) GroupCount() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column identifier, or -1.
func (t *SummaryTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the statistic cell for (group key, column identifier), nil
// when the group or column does not exist or the statistic is missing.
func (t *SummaryTable) Cell(key, column string) *float64 {
	col := t.ColumnIndex(column)
	if col < 0 {
		return nil
	}
	for _, row := range t.Rows {
		if row.Key == key {
			return row.Cells[col]
		}
	}
	return nil
}
