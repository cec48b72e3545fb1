// Package app assembles the dashboard's immutable startup state and answers
// the UI surface's events (selection change, export trigger) with pure
// computations over it.
package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"finboard/adapters/aggregate"
	"finboard/adapters/coerce"
	"finboard/adapters/profile"
	"finboard/domain/core"
	"finboard/domain/schema"
	"finboard/domain/table"
	apperrors "finboard/internal/errors"
	"finboard/ports"
)

// Context is the application state built once at startup and passed by
// reference into every operation and handler. Nothing in it is mutated after
// Build returns.
type Context struct {
	Schema      schema.Schema
	Raw         *table.RawTable
	Cleaned     *table.CleanedTable
	Summary     *table.SummaryTable
	Profiles    []profile.FieldProfile
	Groups      table.GroupIndex
	Snapshot    core.SnapshotID
	Fingerprint core.DatasetHash
	LoadedAt    time.Time
}

// Build runs the startup pipeline: load, validate columns, coerce, partition,
// aggregate, profile. Any failure here is fatal to the process; no partial
// state is ever served.
func Build(ctx context.Context, reader ports.DatasetReaderPort, sc schema.Schema) (*Context, error) {
	start := time.Now()

	if err := sc.Validate(); err != nil {
		return nil, apperrors.SchemaInvalid(err.Error())
	}

	raw, err := reader.ReadTable()
	if err != nil {
		return nil, apperrors.DataLoad("failed to load dataset", err)
	}

	if err := requireColumns(raw, sc); err != nil {
		return nil, err
	}

	cleaned := coerce.NewCoercer().Apply(raw, sc)
	groups := cleaned.GroupBy(sc.KeyField())

	summary, err := aggregate.Summarize(cleaned, sc)
	if err != nil {
		return nil, err
	}

	profiles, err := profile.NewProfiler().ProfileFields(ctx, cleaned, sc)
	if err != nil {
		return nil, apperrors.Wrap(err, "field profiling failed")
	}

	appCtx := &Context{
		Schema:      sc,
		Raw:         raw,
		Cleaned:     cleaned,
		Summary:     summary,
		Profiles:    profiles,
		Groups:      groups,
		Snapshot:    core.NewSnapshotID(),
		Fingerprint: fingerprint(raw),
		LoadedAt:    time.Now().UTC(),
	}

	elapsed := time.Since(start)
	log.Printf("[Build] dashboard context ready in %.2fms (%d rows, %d groups, snapshot %s, data %s)",
		float64(elapsed.Nanoseconds())/1e6, cleaned.RowCount(), summary.GroupCount(), appCtx.Snapshot, appCtx.Fingerprint.Short())

	return appCtx, nil
}

// fingerprint serializes the raw table canonically (header order, row order,
// unit separators between cells) and hashes it, so the same file content
// always yields the same dataset hash.
func fingerprint(raw *table.RawTable) core.DatasetHash {
	var b strings.Builder
	for _, h := range raw.Headers {
		b.WriteString(h)
		b.WriteByte(0x1f)
	}
	b.WriteByte(0x1e)
	for _, row := range raw.Rows {
		for _, h := range raw.Headers {
			b.WriteString(row[h])
			b.WriteByte(0x1f)
		}
		b.WriteByte(0x1e)
	}
	return core.NewDatasetHash([]byte(b.String()))
}

// requireColumns verifies the key and every numeric column exist in the file
// header, exact and case-sensitive. Passthrough columns are optional.
func requireColumns(raw *table.RawTable, sc schema.Schema) error {
	required := append([]string{sc.KeyField()}, sc.NumericFields()...)
	for _, name := range required {
		if !raw.HasColumn(name) {
			return apperrors.SchemaInvalid(fmt.Sprintf("required column %q not found in dataset", name))
		}
	}
	return nil
}

// HoverField returns the passthrough column used for chart hover labels, or
// "" when the dataset has none of the schema's passthrough columns.
func (c *Context) HoverField() string {
	for _, name := range c.Schema.PassthroughFields() {
		if _, ok := c.Cleaned.Strings[name]; ok {
			return name
		}
	}
	return ""
}
