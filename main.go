package main

import (
	"context"
	"embed"
	"log"

	"finboard/adapters/tabular"
	"finboard/app"
	"finboard/domain/schema"
	"finboard/internal"
	"finboard/internal/config"
	"finboard/ui"

	"github.com/joho/godotenv"
)

//go:embed ui/templates/* ui/static/* ui/about.md
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	logger.Info("Configuration loaded: data=%s port=%s", appConfig.Data.File, appConfig.Server.Port)

	// The dataset schema is fixed at compile time; the file on disk must
	// satisfy it or startup fails.
	sc := schema.Default()

	reader, err := tabular.NewReader(appConfig.Data.File)
	if err != nil {
		log.Fatalf("Failed to open data source: %v", err)
	}

	// Build the immutable dashboard context: read, coerce, group, summarize,
	// profile. Everything served afterwards derives from this one snapshot.
	appCtx, err := app.Build(context.Background(), reader, sc)
	if err != nil {
		log.Fatalf("Failed to build dashboard context: %v", err)
	}
	logger.Info("Snapshot %s ready: %d rows, %d groups", appCtx.Snapshot, appCtx.Cleaned.RowCount(), appCtx.Summary.GroupCount())

	svc := app.NewDashboardService(appCtx)

	// Ops sidecar: health probes and pprof on an internal port.
	if appConfig.Ops.Enabled {
		go func() {
			log.Printf("🚀 Ops server starting on :%s", appConfig.Ops.Port)
			if err := ui.NewOpsServer(svc).Start(":" + appConfig.Ops.Port); err != nil {
				log.Printf("❌ Ops server failed: %v", err)
			}
		}()
	}

	// Initialize web server
	server := ui.NewServer(embeddedFiles, svc, appConfig)
	if err := server.Initialize(); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start the server
	log.Printf("🚀 Starting finboard server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
