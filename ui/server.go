// Package ui serves the dashboard: one HTML page, the JSON data APIs behind
// it, the CSV export download, and an internal ops listener.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"finboard/app"
	"finboard/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Server represents the dashboard web server
type Server struct {
	router        *gin.Engine
	svc           *app.DashboardService
	cfg           *config.Config
	templates     *template.Template
	embeddedFiles embed.FS
}

// NewServer creates a new web server instance
func NewServer(embeddedFiles embed.FS, svc *app.DashboardService, cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)
	return &Server{
		router:        gin.Default(),
		svc:           svc,
		cfg:           cfg,
		embeddedFiles: embeddedFiles,
	}
}

// Initialize parses templates and wires middleware and routes
func (s *Server) Initialize() error {
	funcMap := template.FuncMap{
		"add":     func(a, b int) int { return a + b },
		"sub":     func(a, b int) int { return a - b },
		"fmtCell": formatStatCell,
		"fmtNum":  formatNumber,
		"fmtP":    formatPValue,
	}

	templatesFS, err := fs.Sub(s.embeddedFiles, "ui/templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html", "fragments/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	s.setupMiddleware()
	s.setupRoutes()

	return nil
}

// setupMiddleware configures static file serving from the embedded filesystem
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(s.embeddedFiles, "ui/static")
	if err != nil {
		log.Printf("[Static] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/about", s.handleAbout)

	api := NewApiHandler(s.svc, s.cfg.Data.PageSize, s.templates)
	s.router.GET("/api/meta", api.HandleMeta())
	s.router.GET("/api/selection", api.HandleSelection())
	s.router.GET("/api/summary", api.HandleSummary())
	s.router.GET("/api/rows", api.HandleRows())
	s.router.GET("/api/profiles", api.HandleProfiles())
	s.router.GET("/export/csv", api.HandleExportCSV())
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting finboard UI on http://localhost%s", addr)
	return s.router.Run(addr)
}

// handleIndex serves the dashboard page with the tables rendered server-side
// and the charts left to client JS fed by /api/selection.
func (s *Server) handleIndex(c *gin.Context) {
	appCtx := s.svc.Context()

	view := gin.H{
		"Title":        "Analysis Dashboard",
		"GroupKey":     appCtx.Schema.KeyField(),
		"Fields":       appCtx.Schema.NumericFields(),
		"DefaultField": appCtx.Schema.DefaultField(),
		"RowCount":     appCtx.Cleaned.RowCount(),
		"GroupCount":   appCtx.Summary.GroupCount(),
		"Snapshot":     appCtx.Snapshot.String(),
		"Summary":      appCtx.Summary,
		"Profiles":     appCtx.Profiles,
		"Rows":         buildRowsPage(appCtx, 1, s.cfg.Data.PageSize),
	}
	s.renderTemplate(c, "index.html", view)
}

// handleAbout renders the embedded data dictionary markdown.
func (s *Server) handleAbout(c *gin.Context) {
	md, err := s.embeddedFiles.ReadFile("ui/about.md")
	if err != nil {
		log.Printf("[About] markdown not found: %v", err)
		c.String(http.StatusInternalServerError, "about page unavailable")
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML(md, p, renderer)

	s.renderTemplate(c, "about.html", gin.H{
		"Title": "About the Data",
		"Body":  template.HTML(body),
	})
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
