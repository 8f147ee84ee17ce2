package main

import (
	"log"
	"time"

	"github.com/tiUlisses/securityvision-presence-backend/internal/api"
	"github.com/tiUlisses/securityvision-presence-backend/internal/cache"
	"github.com/tiUlisses/securityvision-presence-backend/internal/config"
	"github.com/tiUlisses/securityvision-presence-backend/internal/database"
	"github.com/tiUlisses/securityvision-presence-backend/internal/handler"
	"github.com/tiUlisses/securityvision-presence-backend/internal/report"
	"github.com/tiUlisses/securityvision-presence-backend/internal/repository"
	"github.com/tiUlisses/securityvision-presence-backend/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		log.Fatalf("Invalid REPORT_TIMEZONE %q: %v", cfg.ReportTimezone, err)
	}
	log.Printf("[Server] Bucketing reports in timezone %s", loc)

	var reportCache *cache.ReportCache
	if cfg.RedisAddr != "" {
		reportCache, err = cache.NewReportCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err != nil {
			log.Fatal("Failed to connect to report cache:", err)
		}
		defer reportCache.Close()
		log.Printf("[Server] Report cache enabled: %s", cfg.RedisAddr)
	}

	sessionRepo := repository.NewSessionRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	dirRepo := repository.NewDirectoryRepository(db)

	engine := report.NewEngine(loc)
	reportService := service.NewReportService(sessionRepo, alertRepo, dirRepo, engine, reportCache)
	directoryService := service.NewDirectoryService(dirRepo)
	alertService := service.NewAlertService(alertRepo)

	router := api.SetupRouter(cfg, api.Handlers{
		Reports:   handler.NewReportHandler(reportService),
		Directory: handler.NewDirectoryHandler(directoryService),
		Alerts:    handler.NewAlertHandler(alertService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
