package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"strconv"
	"testing"

	"finboard/domain/schema"
	"finboard/domain/table"
	apperrors "finboard/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	table *table.RawTable
	err   error
}

func (s *stubReader) ReadTable() (*table.RawTable, error) {
	return s.table, s.err
}

func testSchema() schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "Name", Role: schema.RolePassthrough},
		{Name: "Group", Role: schema.RoleKey},
		{Name: "X", Role: schema.RoleNumeric},
	}}
}

// Five rows: groups appear in B, A order, one unparseable numeric cell in A,
// one row with a missing group key.
func testRawTable() *table.RawTable {
	return &table.RawTable{
		Headers: []string{"Name", "Group", "X"},
		Rows: []table.RawRow{
			{"Name": "b1", "Group": "B", "X": "10"},
			{"Name": "a1", "Group": "A", "X": "bad"},
			{"Name": "b2", "Group": "B", "X": "30"},
			{"Name": "a2", "Group": "A", "X": "20"},
			{"Name": "n1", "Group": "", "X": "99"},
		},
	}
}

func builtService(t *testing.T) *DashboardService {
	t.Helper()
	appCtx, err := Build(context.Background(), &stubReader{table: testRawTable()}, testSchema())
	require.NoError(t, err)
	return NewDashboardService(appCtx)
}

func TestBuildContext(t *testing.T) {
	svc := builtService(t)
	appCtx := svc.Context()

	assert.Equal(t, 5, appCtx.Cleaned.RowCount(), "coercion must not drop rows")
	assert.Equal(t, 2, appCtx.Summary.GroupCount())
	assert.False(t, appCtx.Snapshot == "", "snapshot id must be set")
	assert.False(t, appCtx.LoadedAt.IsZero())
	assert.Equal(t, []string{"B", "A"}, appCtx.Groups.Keys, "groups keep first-appearance order")
}

func TestOnSelectionChangeDeterministic(t *testing.T) {
	svc := builtService(t)

	dist1, counts1, err := svc.OnSelectionChange("X")
	require.NoError(t, err)
	dist2, counts2, err := svc.OnSelectionChange("X")
	require.NoError(t, err)

	assert.Equal(t, dist1, dist2, "identical selections must produce identical specs")
	assert.Equal(t, counts1, counts2)
}

func TestOnSelectionChangeSpecs(t *testing.T) {
	svc := builtService(t)

	dist, counts, err := svc.OnSelectionChange("X")
	require.NoError(t, err)

	assert.Equal(t, "Box Plot of X by Group", dist.Title)
	assert.Equal(t, "X", dist.Field)
	require.Len(t, dist.Series, 2)

	// First-appearance order: B before A.
	assert.Equal(t, "B", dist.Series[0].Group)
	assert.Equal(t, []float64{10, 30}, dist.Series[0].Values)
	assert.Equal(t, []string{"b1", "b2"}, dist.Series[0].Hover)

	// The unparseable cell is excluded; hover labels stay aligned.
	assert.Equal(t, "A", dist.Series[1].Group)
	assert.Equal(t, []float64{20}, dist.Series[1].Values)
	assert.Equal(t, []string{"a2"}, dist.Series[1].Hover)

	assert.Equal(t, "Company Count per Group", counts.Title)
	require.Len(t, counts.Bars, 2)

	// Counts are whole rows per group, not non-missing values, so A still
	// counts its unparseable row. The missing-key row joins no bar.
	assert.Equal(t, "B", counts.Bars[0].Group)
	assert.Equal(t, 2, counts.Bars[0].Count)
	assert.Equal(t, "A", counts.Bars[1].Group)
	assert.Equal(t, 2, counts.Bars[1].Count)
}

func TestOnSelectionChangeRejectsUnknownField(t *testing.T) {
	svc := builtService(t)

	_, _, err := svc.OnSelectionChange("Profit")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSelectionInvalid, apperrors.GetCode(err))

	_, _, err = svc.OnSelectionChange("Group")
	require.Error(t, err, "the key column is not a selectable numeric field")
}

func TestOnExportTrigger(t *testing.T) {
	svc := builtService(t)

	payload, err := svc.OnExportTrigger()
	require.NoError(t, err)
	assert.Equal(t, "descriptive_statistics.csv", payload.Filename)

	records, err := csv.NewReader(bytes.NewReader(payload.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per group")

	assert.Equal(t, []string{"Group", "X_mean", "X_median", "X_std", "X_count"}, records[0],
		"group key leads, then the sanitized statistic columns")

	// Rows are sorted by key. A has one usable value so std is empty.
	assert.Equal(t, []string{"A", "20", "20", "", "1"}, records[1])

	wantStd := strconv.FormatFloat(math.Sqrt(200), 'f', -1, 64)
	assert.Equal(t, []string{"B", "20", "20", wantStd, "2"}, records[2])
}

func TestOnExportTriggerByteIdentical(t *testing.T) {
	svc := builtService(t)

	first, err := svc.OnExportTrigger()
	require.NoError(t, err)
	second, err := svc.OnExportTrigger()
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content, "repeated exports must be byte-identical")
	assert.Equal(t, first.Filename, second.Filename)
}

func TestBuildFailsWhenColumnMissing(t *testing.T) {
	raw := &table.RawTable{
		Headers: []string{"Name", "Group"},
		Rows:    []table.RawRow{{"Name": "a", "Group": "A"}},
	}

	_, err := Build(context.Background(), &stubReader{table: raw}, testSchema())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSchemaInvalid, apperrors.GetCode(err))
}

func TestBuildFailsWhenReaderFails(t *testing.T) {
	_, err := Build(context.Background(), &stubReader{err: assert.AnError}, testSchema())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDataLoad, apperrors.GetCode(err))
}

func TestBuildRejectsInvalidSchema(t *testing.T) {
	sc := schema.Schema{Fields: []schema.Field{
		{Name: "X", Role: schema.RoleNumeric},
	}}

	_, err := Build(context.Background(), &stubReader{table: testRawTable()}, sc)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSchemaInvalid, apperrors.GetCode(err))
}
