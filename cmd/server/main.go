// Package main is the entry point for the gene expression server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bmaharathi/zombiegene/internal/api"
	"github.com/bmaharathi/zombiegene/internal/config"
	"github.com/bmaharathi/zombiegene/internal/data/dataset"
	"github.com/bmaharathi/zombiegene/internal/render"
	"github.com/bmaharathi/zombiegene/internal/service"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config/server.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting gene expression server on port %d", cfg.Server.Port)

	ctx := context.Background()

	delimiter, err := cfg.Data.DelimiterRune()
	if err != nil {
		log.Fatalf("Invalid delimiter: %v", err)
	}

	// Load the dataset once; it is read-only from here on.
	store, err := dataset.Load(cfg.Data.CSVPath, dataset.Options{
		Columns:   cfg.Data.Columns,
		Delimiter: delimiter,
	})
	if err != nil {
		log.Fatalf("Failed to load dataset %s: %v", cfg.Data.CSVPath, err)
	}
	log.Printf("  Loaded %d genes from: %s", store.Len(), store.Path())

	logo, err := api.LoadLogo(cfg.Data.LogoPath)
	if err != nil {
		log.Fatalf("Failed to load logo %s: %v", cfg.Data.LogoPath, err)
	}

	defaultMode, err := service.ParseMode(cfg.Defaults.Mode)
	if err != nil {
		log.Fatalf("Invalid default mode: %v", err)
	}

	renderer := render.NewRenderer(render.Config{
		ChartWidth:     cfg.Render.ChartWidth,
		ChartHeight:    cfg.Render.ChartHeight,
		LineWidth:      cfg.Render.LineWidth,
		TableWidth:     cfg.Render.TableWidth,
		TableRowHeight: cfg.Render.TableRowHeight,
		TableMaxRows:   cfg.Render.TableMaxRows,
		Palette:        cfg.Render.Palette,
	})

	expressionService := service.NewExpressionService(service.ExpressionServiceConfig{
		Store:        store,
		DefaultGenes: cfg.Defaults.Genes,
		DefaultMode:  defaultMode,
	})

	// Set up HTTP router
	router := api.NewRouter(api.RouterConfig{
		Service:          expressionService,
		Renderer:         renderer,
		CORSOrigins:      cfg.Server.CORSOrigins,
		Title:            cfg.Server.Title,
		Logo:             logo,
		DownloadFilename: cfg.Data.DownloadFilename,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
