package main

import (
	"fmt"
	"os"

	"fleet-report-service/internal/auth"
	"fleet-report-service/internal/config"
	"fleet-report-service/internal/db"
	httphandler "fleet-report-service/internal/http"
	"fleet-report-service/internal/http/middleware"
	"fleet-report-service/internal/logger"
	"fleet-report-service/internal/report"
	"fleet-report-service/internal/repository"
	"fleet-report-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	telemetryRepo := repository.NewTelemetryRepository(database)
	pipeline := report.NewPipeline(report.Params{
		ClusterRadiusMeters: cfg.Report.ClusterRadiusMeters,
		TopLocations:        cfg.Report.TopLocations,
		PageSize:            cfg.Report.PageSize,
		MinStartDate:        cfg.Report.MinStartDate,
	})
	reportService := service.NewReportService(telemetryRepo, pipeline, appLogger)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(reportService, appLogger)
	router := httphandler.NewRouter(
		handler,
		middleware.Auth(tokenParser),
		middleware.RequestLogger(appLogger),
		cfg.Environment,
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet report service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
