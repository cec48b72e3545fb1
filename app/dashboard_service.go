package app

import (
	"finboard/domain/chart"
	apperrors "finboard/internal/errors"
)

// DashboardService answers the UI surface's events from the immutable
// context. Both operations are synchronous pure reads; the service holds no
// state of its own beyond the context pointer.
type DashboardService struct {
	ctx *Context
}

// NewDashboardService creates the service over a built context.
func NewDashboardService(ctx *Context) *DashboardService {
	return &DashboardService{ctx: ctx}
}

// Context exposes the immutable application state to read-only consumers.
func (s *DashboardService) Context() *Context {
	return s.ctx
}

// OnSelectionChange produces the two chart specs for a selected numeric
// field. Identical selections always yield identical specs. A field outside
// the schema's numeric list is a caller bug, reported as a typed
// invalid-selection error.
func (s *DashboardService) OnSelectionChange(field string) (chart.DistributionSpec, chart.CountSpec, error) {
	if !s.ctx.Schema.HasNumeric(field) {
		return chart.DistributionSpec{}, chart.CountSpec{}, apperrors.SelectionInvalid(field)
	}
	return buildDistributionSpec(s.ctx, field), buildCountSpec(s.ctx), nil
}

// OnExportTrigger serializes the summary table to its CSV payload. Repeated
// triggers yield byte-identical output; the table is never touched.
func (s *DashboardService) OnExportTrigger() (CsvPayload, error) {
	content, err := buildSummaryCSV(s.ctx.Summary)
	if err != nil {
		return CsvPayload{}, apperrors.WithCode(apperrors.CodeExportError, err)
	}
	return CsvPayload{Filename: ExportFilename, Content: content}, nil
}
