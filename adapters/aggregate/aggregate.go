// Package aggregate computes the grouped descriptive-statistics table: one
// row per distinct group key, mean/median/std/count per numeric field.
package aggregate

import (
	"log"
	"sort"
	"time"

	"finboard/domain/schema"
	"finboard/domain/table"
	apperrors "finboard/internal/errors"

	"github.com/montanaflynn/stats"
)

// Summarize partitions the cleaned table by its key column and computes the
// summary statistics for every numeric field. Rows with a missing key join no
// partition; result rows are sorted lexically by key. Statistics honor the
// missing rules: mean and median need at least one non-missing value, the
// sample standard deviation needs at least two, count is the number of
// non-missing values.
func Summarize(cleaned *table.CleanedTable, sc schema.Schema) (*table.SummaryTable, error) {
	start := time.Now()

	idx := cleaned.GroupBy(sc.KeyField())
	keys := append([]string(nil), idx.Keys...)
	sort.Strings(keys)

	numericFields := sc.NumericFields()
	columns := sc.SummaryColumns()

	summary := &table.SummaryTable{
		KeyName: sc.KeyField(),
		Columns: columns,
		Rows:    make([]table.SummaryRow, 0, len(keys)),
	}

	for _, key := range keys {
		rowIdx := idx.Rows[key]
		cells := make([]*float64, 0, len(columns))

		for _, field := range numericFields {
			column := cleaned.Numbers[field]
			values := make([]float64, 0, len(rowIdx))
			for _, i := range rowIdx {
				if !table.IsMissing(column[i]) {
					values = append(values, column[i])
				}
			}

			fieldCells, err := computeStatistics(values)
			if err != nil {
				return nil, apperrors.Aggregation("statistics failed for field "+field+" in group "+key, err)
			}
			cells = append(cells, fieldCells...)
		}

		summary.Rows = append(summary.Rows, table.SummaryRow{Key: key, Cells: cells})
	}

	elapsed := time.Since(start)
	log.Printf("[Aggregate] summary table computed in %.2fms (%d groups, %d columns)",
		float64(elapsed.Nanoseconds())/1e6, len(summary.Rows), len(summary.Columns))

	return summary, nil
}

// computeStatistics returns the [mean, median, std, count] cells for one
// field's non-missing values within one group, nil for undefined statistics.
func computeStatistics(values []float64) ([]*float64, error) {
	cells := make([]*float64, 0, len(schema.Statistics))

	if len(values) > 0 {
		mean, err := stats.Mean(values)
		if err != nil {
			return nil, err
		}
		median, err := stats.Median(values)
		if err != nil {
			return nil, err
		}
		cells = append(cells, ptr(mean), ptr(median))
	} else {
		cells = append(cells, nil, nil)
	}

	if len(values) >= 2 {
		std, err := stats.StandardDeviationSample(values)
		if err != nil {
			return nil, err
		}
		cells = append(cells, ptr(std))
	} else {
		cells = append(cells, nil)
	}

	cells = append(cells, ptr(float64(len(values))))
	return cells, nil
}

func ptr(v float64) *float64 {
	return &v
}
