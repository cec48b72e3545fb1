package ui

import (
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"finboard/app"
	"finboard/domain/table"
	apperrors "finboard/internal/errors"

	"github.com/gin-gonic/gin"
)

// ApiHandler serves the JSON data endpoints and the CSV export.
type ApiHandler struct {
	svc       *app.DashboardService
	pageSize  int
	templates *template.Template
}

// NewApiHandler creates the API handler.
func NewApiHandler(svc *app.DashboardService, pageSize int, templates *template.Template) *ApiHandler {
	return &ApiHandler{
		svc:       svc,
		pageSize:  pageSize,
		templates: templates,
	}
}

// HandleMeta reports dataset identity and the selection contract: the
// enumerated field list the UI may choose from.
func (h *ApiHandler) HandleMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		appCtx := h.svc.Context()
		c.JSON(http.StatusOK, gin.H{
			"snapshot_id":   appCtx.Snapshot.String(),
			"data_hash":     appCtx.Fingerprint.String(),
			"loaded_at":     appCtx.LoadedAt.Format(time.RFC3339),
			"group_key":     appCtx.Schema.KeyField(),
			"fields":        appCtx.Schema.NumericFields(),
			"default_field": appCtx.Schema.DefaultField(),
			"rows":          appCtx.Cleaned.RowCount(),
			"groups":        appCtx.Summary.GroupCount(),
			"page_size":     h.pageSize,
		})
	}
}

// HandleSelection answers a selection-change event with both chart specs. A
// field outside the enumerated list is a client bug and gets a 400.
func (h *ApiHandler) HandleSelection() gin.HandlerFunc {
	return func(c *gin.Context) {
		field := c.Query("field")

		distribution, counts, err := h.svc.OnSelectionChange(field)
		if err != nil {
			log.Printf("[API] rejected selection %q: %v", field, err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"code":  apperrors.GetCode(err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"distribution": distribution,
			"counts":       counts,
		})
	}
}

// HandleSummary returns the grouped descriptive-statistics table.
func (h *ApiHandler) HandleSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.svc.Context().Summary)
	}
}

// HandleRows returns one page of the cleaned table, as an HTML fragment for
// HTMX requests or as JSON otherwise.
func (h *ApiHandler) HandleRows() gin.HandlerFunc {
	return func(c *gin.Context) {
		pageStr := c.DefaultQuery("page", "1")
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			page = 1
		}

		rowsPage := buildRowsPage(h.svc.Context(), page, h.pageSize)

		if c.GetHeader("HX-Request") == "true" {
			c.Header("Content-Type", "text/html")
			if err := h.templates.ExecuteTemplate(c.Writer, "rows_table.html", rowsPage); err != nil {
				log.Printf("Template error: %v", err)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
			return
		}

		c.JSON(http.StatusOK, rowsPage)
	}
}

// HandleProfiles returns the per-field startup profiles.
func (h *ApiHandler) HandleProfiles() gin.HandlerFunc {
	return func(c *gin.Context) {
		appCtx := h.svc.Context()
		c.JSON(http.StatusOK, gin.H{
			"profiles": appCtx.Profiles,
			"count":    len(appCtx.Profiles),
		})
	}
}

// HandleExportCSV streams the summary table export as an attachment.
func (h *ApiHandler) HandleExportCSV() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := h.svc.OnExportTrigger()
		if err != nil {
			log.Printf("[API] export failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "export failed",
			})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", payload.Filename))
		c.Data(http.StatusOK, "text/csv", payload.Content)
	}
}

// RowsPage is one page of the cleaned table with cells already formatted for
// display.
type RowsPage struct {
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalRows  int        `json:"total_rows"`
	TotalPages int        `json:"total_pages"`
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
	HasPrev    bool       `json:"has_prev"`
	HasNext    bool       `json:"has_next"`
}

// buildRowsPage slices the cleaned table into a display page. Numeric cells
// format without exponent notation; missing cells render empty.
func buildRowsPage(appCtx *app.Context, page, pageSize int) RowsPage {
	total := appCtx.Cleaned.RowCount()
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	headers := appCtx.Cleaned.Headers
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		cells := make([]string, len(headers))
		for j, header := range headers {
			if column, ok := appCtx.Cleaned.Numbers[header]; ok {
				cells[j] = formatNumberCell(column[i])
			} else {
				cells[j] = appCtx.Cleaned.Strings[header][i]
			}
		}
		rows = append(rows, cells)
	}

	return RowsPage{
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: totalPages,
		Headers:    headers,
		Rows:       rows,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

func formatNumberCell(v float64) string {
	if table.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatStatCell renders a summary cell for display: em dash for missing,
// integers without decimals, everything else with two.
func formatStatCell(v *float64) string {
	if v == nil {
		return "—"
	}
	f := *v
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
