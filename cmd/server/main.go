package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"registru-backend/internal/cache"
	"registru-backend/internal/config"
	"registru-backend/internal/database"
	"registru-backend/internal/db"
	"registru-backend/internal/handlers"
	"registru-backend/internal/health"
	h "registru-backend/internal/http"
	"registru-backend/internal/importer"
	"registru-backend/internal/middleware"
	"registru-backend/internal/repositories"
	"registru-backend/internal/services"
	"registru-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional: without it, staged imports live in process memory.
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Cache] Redis unavailable, staging imports in memory: %v", err)
	}

	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	healthChecker := health.NewHealthChecker(pool, cache.GetClient())

	// Repositories
	yearRepo := repositories.NewRegistryYearRepository(pool)
	templateRepo := repositories.NewImportTemplateRepository(pool)
	entryRepo := repositories.NewManifestEntryRepository(pool)
	containerTypeRepo := repositories.NewContainerTypeRepository(pool)
	shipRepo := repositories.NewShipRepository(pool)
	flagRepo := repositories.NewFlagRepository(pool)

	// Staging store
	stagingTTL := time.Duration(cfg.Import.StagingTTLMinutes) * time.Minute
	var staging importer.Store
	if client := cache.GetClient(); client != nil {
		staging = importer.NewRedisStore(client, stagingTTL)
	} else {
		staging = importer.NewMemoryStore(stagingTTL)
	}

	// Services
	lookupService := services.NewLookupService(containerTypeRepo, flagRepo, shipRepo, entryRepo)
	importService := services.NewImportService(templateRepo, yearRepo, entryRepo, staging, lookupService)
	yearService := services.NewYearService(yearRepo)
	templateService := services.NewTemplateService(templateRepo)

	// Handlers
	maxUploadBytes := int64(cfg.Import.MaxUploadMB) * 1024 * 1024
	importHandler := handlers.NewImportHandler(importService, maxUploadBytes)
	templateHandler := handlers.NewTemplateHandler(templateService)
	yearHandler := handlers.NewYearHandler(yearService)
	lookupHandler := handlers.NewLookupHandler(lookupService)
	entryHandler := handlers.NewEntryHandler(importService, yearService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(importHandler, templateHandler, yearHandler, lookupHandler, entryHandler, healthHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Registry server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
