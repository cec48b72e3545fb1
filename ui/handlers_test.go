package ui

import (
	"testing"

	"finboard/app"
	"finboard/domain/table"
)

func pagingContext(rows int) *app.Context {
	names := make([]string, rows)
	values := make([]float64, rows)
	for i := range names {
		names[i] = "row"
		values[i] = float64(i)
	}
	return &app.Context{
		Cleaned: &table.CleanedTable{
			Headers: []string{"Name", "X"},
			NumRows: rows,
			Strings: map[string][]string{"Name": names},
			Numbers: map[string][]float64{"X": values},
		},
	}
}

func TestBuildRowsPagePagination(t *testing.T) {
	appCtx := pagingContext(25)

	tests := []struct {
		name     string
		page     int
		wantPage int
		wantRows int
		hasPrev  bool
		hasNext  bool
	}{
		{"first page", 1, 1, 10, false, true},
		{"middle page", 2, 2, 10, true, true},
		{"last short page", 3, 3, 5, true, false},
		{"page beyond end clamps", 99, 3, 5, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildRowsPage(appCtx, tt.page, 10)
			if got.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", got.Page, tt.wantPage)
			}
			if len(got.Rows) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(got.Rows), tt.wantRows)
			}
			if got.HasPrev != tt.hasPrev || got.HasNext != tt.hasNext {
				t.Errorf("prev/next = %v/%v, want %v/%v", got.HasPrev, got.HasNext, tt.hasPrev, tt.hasNext)
			}
			if got.TotalPages != 3 {
				t.Errorf("total pages = %d, want 3", got.TotalPages)
			}
			if got.TotalRows != 25 {
				t.Errorf("total rows = %d, want 25", got.TotalRows)
			}
		})
	}
}

func TestBuildRowsPageFormatsCells(t *testing.T) {
	appCtx := &app.Context{
		Cleaned: &table.CleanedTable{
			Headers: []string{"Name", "X"},
			NumRows: 2,
			Strings: map[string][]string{"Name": {"Acme", "Beta"}},
			Numbers: map[string][]float64{"X": {1234.5, table.Missing()}},
		},
	}

	got := buildRowsPage(appCtx, 1, 10)

	if got.Rows[0][1] != "1234.5" {
		t.Errorf("numeric cell = %q, want 1234.5", got.Rows[0][1])
	}
	if got.Rows[1][1] != "" {
		t.Errorf("missing cell should render empty, got %q", got.Rows[1][1])
	}
	if got.Rows[0][0] != "Acme" {
		t.Errorf("string cell = %q, want Acme", got.Rows[0][0])
	}
}

func TestFormatStatCell(t *testing.T) {
	integral := 42.0
	fractional := 3.14159
	big := 2500000.0

	tests := []struct {
		name  string
		input *float64
		want  string
	}{
		{"missing", nil, "—"},
		{"integral", &integral, "42"},
		{"fractional", &fractional, "3.14"},
		{"large integral", &big, "2500000"},
	}

	for _, tt := range tests {
		if got := formatStatCell(tt.input); got != tt.want {
			t.Errorf("%s: formatStatCell = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatNumberCell(t *testing.T) {
	if got := formatNumberCell(table.Missing()); got != "" {
		t.Errorf("missing should format empty, got %q", got)
	}
	if got := formatNumberCell(1e7); got != "10000000" {
		t.Errorf("large value should avoid exponent notation, got %q", got)
	}
	if got := formatNumberCell(0.5); got != "0.5" {
		t.Errorf("got %q, want 0.5", got)
	}
}
