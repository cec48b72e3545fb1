package app

import (
	"fmt"

	"finboard/domain/chart"
	"finboard/domain/table"
)

// chartLayout returns the layout hints both dashboard charts share.
func chartLayout(xTitle, yTitle string) chart.Layout {
	return chart.Layout{
		XTitle:    xTitle,
		YTitle:    yTitle,
		TickAngle: -45,
		Height:    600,
		Template:  "plotly_white",
	}
}

// buildDistributionSpec produces the grouped distribution chart of one
// numeric field: one series per group in first-appearance order, carrying the
// group's non-missing values and, when available, hover labels from the
// passthrough identifier column.
func buildDistributionSpec(appCtx *Context, field string) chart.DistributionSpec {
	keyName := appCtx.Schema.KeyField()
	column := appCtx.Cleaned.Numbers[field]

	var labels []string
	if hoverField := appCtx.HoverField(); hoverField != "" {
		labels = appCtx.Cleaned.Strings[hoverField]
	}

	series := make([]chart.DistributionSeries, 0, len(appCtx.Groups.Keys))
	for i, key := range appCtx.Groups.Keys {
		rowIdx := appCtx.Groups.Rows[key]
		values := make([]float64, 0, len(rowIdx))
		var hover []string
		if labels != nil {
			hover = make([]string, 0, len(rowIdx))
		}

		for _, row := range rowIdx {
			if table.IsMissing(column[row]) {
				continue
			}
			values = append(values, column[row])
			if labels != nil {
				hover = append(hover, labels[row])
			}
		}

		series = append(series, chart.DistributionSeries{
			Group:  key,
			Values: values,
			Hover:  hover,
			Color:  chart.ColorFor(i),
		})
	}

	return chart.DistributionSpec{
		Type:   chart.TypeBox,
		Title:  fmt.Sprintf("Box Plot of %s by %s", field, keyName),
		Field:  field,
		Series: series,
		Layout: chartLayout(keyName, field),
	}
}

// buildCountSpec produces the bar chart of total row counts per group, in
// first-appearance order. This counts rows, not non-missing values, so it is
// independent of any field selection.
func buildCountSpec(appCtx *Context) chart.CountSpec {
	keyName := appCtx.Schema.KeyField()

	bars := make([]chart.Bar, 0, len(appCtx.Groups.Keys))
	for i, key := range appCtx.Groups.Keys {
		bars = append(bars, chart.Bar{
			Group: key,
			Count: len(appCtx.Groups.Rows[key]),
			Color: chart.ColorFor(i),
		})
	}

	layout := chartLayout(keyName, "Company Count")
	layout.ShowText = true

	return chart.CountSpec{
		Type:   chart.TypeBar,
		Title:  fmt.Sprintf("Company Count per %s", keyName),
		Bars:   bars,
		Layout: layout,
	}
}
