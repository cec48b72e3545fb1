package app

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"finboard/domain/table"
)

// ExportFilename is the fixed download name for the summary export.
const ExportFilename = "descriptive_statistics.csv"

// CsvPayload is the export artifact: a filename plus the exact bytes to
// deliver. The transport (attachment download) belongs to the HTTP layer.
type CsvPayload struct {
	Filename string
	Content  []byte
}

// buildSummaryCSV serializes the summary table: the group key restored as the
// leading column under its original name, then the sanitized statistic
// identifiers. Missing statistics serialize as empty cells. The output is a
// pure function of the table, so repeated calls are byte-identical.
func buildSummaryCSV(summary *table.SummaryTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(summary.Columns)+1)
	header = append(header, summary.KeyName)
	header = append(header, summary.Columns...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range summary.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Key)
		for _, cell := range row.Cells {
			record = append(record, formatCell(cell))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatCell renders a statistic cell without exponent notation and without
// trailing zero noise; integral values (counts in particular) print as
// integers.
func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
