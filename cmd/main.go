package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"crm-analytics-service/internal/analytics"
	"crm-analytics-service/internal/config"
	"crm-analytics-service/internal/controller"
	"crm-analytics-service/internal/db"
	httpserver "crm-analytics-service/internal/http"
	"crm-analytics-service/internal/repository"
	"crm-analytics-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.NewConnection(ctx, cfg)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	engine := analytics.NewEngine()
	engine.Detector.DedupWindow = cfg.DedupWindow
	engine.Targets.ActiveWindow = cfg.ActiveAgentWindow
	engine.Classifier.Keywords = cfg.SaleKeywords
	engine.Classifier.CurrencySymbols = cfg.CurrencySymbols
	engine.Optimism = cfg.OptimismFactor

	repo := repository.NewReportRepository(conn)
	worker := service.NewBatchActivityWorker(repo, cfg.WorkerBufferSize, cfg.WorkerBatchSize, cfg.WorkerFlushEvery)
	defer worker.Shutdown()

	activityService := service.NewActivityService(worker, cfg.FutureTolerance)
	reportService := service.NewReportService(repo, engine)
	reportController := controller.NewReportController(activityService, reportService)

	server := httpserver.NewServer(cfg, reportController)

	log.Printf("starting server on %s", cfg.HTTPPort)
	if err := server.Listen(cfg.HTTPPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
