package table

import (
	"math"
	"testing"
)

func TestMissingMarker(t *testing.T) {
	if !IsMissing(Missing()) {
		t.Error("Missing() should satisfy IsMissing")
	}
	if IsMissing(0) {
		t.Error("zero is a real value, not missing")
	}
	if IsMissing(math.Inf(1)) {
		t.Error("infinity is not the missing marker")
	}
}

func TestGroupByFirstAppearanceOrder(t *testing.T) {
	cleaned := &CleanedTable{
		Headers: []string{"Group"},
		NumRows: 5,
		Strings: map[string][]string{
			"Group": {"Software", "Pharma", "Software", "Energy", "Pharma"},
		},
		Numbers: map[string][]float64{},
	}

	idx := cleaned.GroupBy("Group")

	want := []string{"Software", "Pharma", "Energy"}
	if len(idx.Keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(idx.Keys))
	}
	for i, key := range want {
		if idx.Keys[i] != key {
			t.Errorf("key %d = %q, want %q", i, idx.Keys[i], key)
		}
	}

	if got := idx.Rows["Software"]; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Software rows = %v, want [0 2]", got)
	}
}

func TestGroupBySkipsMissingKeys(t *testing.T) {
	cleaned := &CleanedTable{
		Headers: []string{"Group"},
		NumRows: 4,
		Strings: map[string][]string{
			"Group": {"A", "", "   ", "B"},
		},
		Numbers: map[string][]float64{},
	}

	idx := cleaned.GroupBy("Group")

	if len(idx.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(idx.Keys), idx.Keys)
	}
	total := 0
	for _, rows := range idx.Rows {
		total += len(rows)
	}
	if total != 2 {
		t.Errorf("expected 2 partitioned rows, got %d", total)
	}
}

func TestGroupByUnknownColumn(t *testing.T) {
	cleaned := &CleanedTable{
		Headers: []string{"Group"},
		NumRows: 1,
		Strings: map[string][]string{"Group": {"A"}},
		Numbers: map[string][]float64{},
	}

	idx := cleaned.GroupBy("Nope")
	if len(idx.Keys) != 0 {
		t.Errorf("unknown column should produce an empty index, got keys %v", idx.Keys)
	}
}

func TestSummaryTableCell(t *testing.T) {
	v := 3.5
	summary := &SummaryTable{
		KeyName: "Group",
		Columns: []string{"X_mean", "X_count"},
		Rows: []SummaryRow{
			{Key: "A", Cells: []*float64{&v, nil}},
		},
	}

	if cell := summary.Cell("A", "X_mean"); cell == nil || *cell != 3.5 {
		t.Errorf("Cell(A, X_mean) = %v, want 3.5", cell)
	}
	if cell := summary.Cell("A", "X_count"); cell != nil {
		t.Errorf("Cell(A, X_count) should be nil, got %v", *cell)
	}
	if cell := summary.Cell("B", "X_mean"); cell != nil {
		t.Error("unknown group should return nil")
	}
	if cell := summary.Cell("A", "Nope"); cell != nil {
		t.Error("unknown column should return nil")
	}
}

func TestRawTableHasColumn(t *testing.T) {
	raw := &RawTable{Headers: []string{"Company", "Revenue"}}

	if !raw.HasColumn("Revenue") {
		t.Error("Revenue should be present")
	}
	if raw.HasColumn("revenue") {
		t.Error("column match is case-sensitive")
	}
	if raw.HasColumn("Profit") {
		t.Error("Profit should be absent")
	}
}
