// Package schema defines the dataset's column contract in one place. Every
// stage (coercion, aggregation, charts, export, UI) consumes this definition
// instead of repeating column-name literals.
package schema

import (
	"fmt"
	"strings"
)

// Role classifies how a column participates in the pipeline.
type Role string

const (
	// RoleKey marks the categorical column rows are partitioned by.
	RoleKey Role = "key"
	// RoleNumeric marks a column coerced to float64 and aggregated.
	RoleNumeric Role = "numeric"
	// RolePassthrough marks a column kept verbatim (identifiers, hover labels).
	RolePassthrough Role = "passthrough"
)

// Field is one ordered column descriptor.
type Field struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Schema is the ordered list of field descriptors for the dataset.
type Schema struct {
	Fields []Field `json:"fields"`
}

// Statistics is the fixed, ordered set of summary statistics computed per
// numeric field per group.
var Statistics = []string{"mean", "median", "std", "count"}

// identifierReplacer applies the summary column naming rule: spaces become
// underscores, parentheses are removed.
var identifierReplacer = strings.NewReplacer(" ", "_", "(", "", ")", "")

// Default returns the company dataset schema: one industry grouping key, one
// passthrough identifier and the fourteen financial metrics coerced to
// numeric, in their canonical order.
func Default() Schema {
	return Schema{Fields: []Field{
		{Name: "Company", Role: RolePassthrough},
		{Name: "Primary Industry Group", Role: RoleKey},
		{Name: "First Financing Size", Role: RoleNumeric},
		{Name: "First Financing Valuation", Role: RoleNumeric},
		{Name: "Revenue", Role: RoleNumeric},
		{Name: "Revenue Growth %", Role: RoleNumeric},
		{Name: "Net Income", Role: RoleNumeric},
		{Name: "Net Debt", Role: RoleNumeric},
		{Name: "Market Cap", Role: RoleNumeric},
		{Name: "Gross Profit", Role: RoleNumeric},
		{Name: "Enterprise Value", Role: RoleNumeric},
		{Name: "EBITDA", Role: RoleNumeric},
		{Name: "EBIT", Role: RoleNumeric},
		{Name: "Total Patent Document", Role: RoleNumeric},
		{Name: "Total Clinical Trials", Role: RoleNumeric},
		{Name: "#Active Investors", Role: RoleNumeric},
	}}
}

// KeyField returns the name of the grouping key column.
func (s Schema) KeyField() string {
	for _, f := range s.Fields {
		if f.Role == RoleKey {
			return f.Name
		}
	}
	return ""
}

// NumericFields returns the ordered list of numeric column names.
func (s Schema) NumericFields() []string {
	fields := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Role == RoleNumeric {
			fields = append(fields, f.Name)
		}
	}
	return fields
}

// PassthroughFields returns the ordered list of passthrough column names.
func (s Schema) PassthroughFields() []string {
	var fields []string
	for _, f := range s.Fields {
		if f.Role == RolePassthrough {
			fields = append(fields, f.Name)
		}
	}
	return fields
}

// HasNumeric reports whether name is one of the numeric fields.
func (s Schema) HasNumeric(name string) bool {
	for _, f := range s.Fields {
		if f.Role == RoleNumeric && f.Name == name {
			return true
		}
	}
	return false
}

// DefaultField returns the numeric field initially selected in the UI, the
// first numeric descriptor in order.
func (s Schema) DefaultField() string {
	for _, f := range s.Fields {
		if f.Role == RoleNumeric {
			return f.Name
		}
	}
	return ""
}

// SummaryIdentifier flattens a (field, statistic) pair into a single
// identifier: joined with an underscore, then sanitized so the result is safe
// for strict-schema consumers (CSV headers, JSON keys, dataframe columns).
func SummaryIdentifier(field, statistic string) string {
	return identifierReplacer.Replace(field + "_" + statistic)
}

// SummaryColumns returns the full field x statistic identifier cross-product
// in schema order, the column layout of the summary table.
func (s Schema) SummaryColumns() []string {
	numeric := s.NumericFields()
	columns := make([]string, 0, len(numeric)*len(Statistics))
	for _, field := range numeric {
		for _, stat := range Statistics {
			columns = append(columns, SummaryIdentifier(field, stat))
		}
	}
	return columns
}

// Validate checks the structural invariants the pipeline relies on: exactly
// one key field, at least one numeric field, no duplicate field names, and a
// collision-free sanitized identifier cross-product.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema has no fields")
	}

	keys := 0
	names := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema contains a field with an empty name")
		}
		if names[f.Name] {
			return fmt.Errorf("duplicate field name: %q", f.Name)
		}
		names[f.Name] = true

		switch f.Role {
		case RoleKey:
			keys++
		case RoleNumeric, RolePassthrough:
		default:
			return fmt.Errorf("field %q has unknown role %q", f.Name, f.Role)
		}
	}
	if keys != 1 {
		return fmt.Errorf("schema must have exactly one key field, found %d", keys)
	}
	if len(s.NumericFields()) == 0 {
		return fmt.Errorf("schema has no numeric fields")
	}

	seen := make(map[string]string)
	for _, field := range s.NumericFields() {
		for _, stat := range Statistics {
			id := SummaryIdentifier(field, stat)
			if strings.ContainsAny(id, " ()") {
				return fmt.Errorf("identifier %q still contains forbidden characters", id)
			}
			if prev, ok := seen[id]; ok {
				return fmt.Errorf("summary identifier collision: %q and %q both flatten to %q", prev, field, id)
			}
			seen[id] = field
		}
	}

	return nil
}
