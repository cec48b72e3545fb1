// Package coerce converts the schema's numeric-role columns from raw strings
// to float64 values. Cells that do not parse become the missing-value marker;
// the stage never fails and never drops a row.
package coerce

import (
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"finboard/domain/schema"
	"finboard/domain/table"
)

// Coercer applies deterministic numeric coercion to raw table columns.
type Coercer struct{}

// NewCoercer creates a coercer.
func NewCoercer() *Coercer {
	return &Coercer{}
}

// Apply produces the CleanedTable: numeric-role columns parsed to float64
// (NaN for unparseable or empty cells), every other column carried through as
// strings. Row count and column set are preserved exactly.
func (c *Coercer) Apply(raw *table.RawTable, sc schema.Schema) *table.CleanedTable {
	start := time.Now()

	numericSet := make(map[string]bool)
	for _, f := range sc.NumericFields() {
		numericSet[f] = true
	}

	cleaned := &table.CleanedTable{
		Headers: raw.Headers,
		NumRows: len(raw.Rows),
		Strings: make(map[string][]string),
		Numbers: make(map[string][]float64),
	}

	missingByColumn := make(map[string]int)
	for _, header := range raw.Headers {
		if numericSet[header] {
			column := make([]float64, len(raw.Rows))
			for i, row := range raw.Rows {
				if v, ok := c.parseNumeric(row[header]); ok {
					column[i] = v
				} else {
					column[i] = table.Missing()
					if row[header] != "" {
						missingByColumn[header]++
					}
				}
			}
			cleaned.Numbers[header] = column
		} else {
			column := make([]string, len(raw.Rows))
			for i, row := range raw.Rows {
				column[i] = row[header]
			}
			cleaned.Strings[header] = column
		}
	}

	coerceTime := time.Since(start)
	log.Printf("[Coercer] %d columns coerced in %.2fms (%d rows)",
		len(cleaned.Numbers), float64(coerceTime.Nanoseconds())/1e6, cleaned.NumRows)
	for column, n := range missingByColumn {
		log.Printf("[Coercer] column %q: %d unparseable cells coerced to missing", column, n)
	}

	return cleaned
}

// parseNumeric attempts to parse a cell as numeric.
// Handles international formats: parentheses for negatives, European decimals, currency symbols
func (c *Coercer) parseNumeric(strVal string) (float64, bool) {
	if strVal == "" {
		return 0, false
	}

	cleanVal := strings.TrimSpace(strVal)

	// Handle parentheses for negative numbers: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimPrefix(cleanVal, "(")
		cleanVal = strings.TrimSuffix(cleanVal, ")")
		isNegative = true
	}

	// Remove currency symbols: $, €, £, ¥
	currencySymbols := []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"}
	for _, symbol := range currencySymbols {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(cleanVal)

	// Remove percentage sign
	cleanVal = strings.ReplaceAll(cleanVal, "%", "")

	// Detect European/French number format (1.234,56 or 1 234,56)
	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	if hasComma && (hasPeriod || hasSpace) {
		// European format: period/space as thousands separator, comma as decimal
		commaIdx := strings.LastIndex(cleanVal, ",")
		afterComma := cleanVal[commaIdx+1:]
		if len(afterComma) <= 3 && isDigits(afterComma) {
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else {
			// Comma is likely a thousands separator, remove it
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		}
	} else if hasComma && !hasPeriod {
		// Only comma present, treat as European decimal separator
		cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
	} else {
		// Standard format: remove commas and spaces (thousands separators)
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	// ParseFloat handles scientific notation automatically
	if val, err := strconv.ParseFloat(cleanVal, 64); err == nil {
		if !math.IsInf(val, 0) && !math.IsNaN(val) {
			return val, true
		}
	}

	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
