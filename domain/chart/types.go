// Package chart defines declarative plot specifications. A spec is pure data
// (titles, axis bindings, ordered series); rendering belongs to the browser.
package chart

// Type names the plot family a spec describes.
type Type string

const (
	// TypeBox is a grouped distribution (box) plot.
	TypeBox Type = "box"
	// TypeBar is a categorical bar plot.
	TypeBar Type = "bar"
)

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ColorFor returns the palette color for the i-th series, cycling when the
// palette is exhausted.
func ColorFor(i int) string {
	return defaultColors[i%len(defaultColors)]
}

// Layout carries presentation hints shared by both chart kinds.
type Layout struct {
	XTitle    string `json:"x_title"`
	YTitle    string `json:"y_title"`
	TickAngle int    `json:"tick_angle"`
	Height    int    `json:"height"`
	Template  string `json:"template"`
	ShowText  bool   `json:"show_text,omitempty"`
}

// DistributionSeries holds one group's raw values for a distribution plot.
// Hover, when present, is label text aligned index-for-index with Values.
type DistributionSeries struct {
	Group  string    `json:"group"`
	Values []float64 `json:"values"`
	Hover  []string  `json:"hover,omitempty"`
	Color  string    `json:"color"`
}

// DistributionSpec describes the grouped distribution of one numeric field:
// x = group key, y = field values, one series per group in first-appearance
// order.
type DistributionSpec struct {
	Type   Type                 `json:"type"`
	Title  string               `json:"title"`
	Field  string               `json:"field"`
	Series []DistributionSeries `json:"series"`
	Layout Layout               `json:"layout"`
}

// Bar is one group's bar in a count plot.
type Bar struct {
	Group string `json:"group"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// CountSpec describes the row-count-per-group bar chart. Counts are total
// rows in each partition, independent of any per-field missing values, in
// first-appearance group order.
type CountSpec struct {
	Type   Type   `json:"type"`
	Title  string `json:"title"`
	Bars   []Bar  `json:"bars"`
	Layout Layout `json:"layout"`
}
