package main

import (
	"fmt"
	"os"

	"github.com/Yasser-Essafi/SRM/internal/agent"
	"github.com/Yasser-Essafi/SRM/internal/auth"
	"github.com/Yasser-Essafi/SRM/internal/config"
	"github.com/Yasser-Essafi/SRM/internal/db"
	httphandler "github.com/Yasser-Essafi/SRM/internal/http"
	"github.com/Yasser-Essafi/SRM/internal/http/middleware"
	"github.com/Yasser-Essafi/SRM/internal/logger"
	"github.com/Yasser-Essafi/SRM/internal/ocr"
	"github.com/Yasser-Essafi/SRM/internal/report"
	"github.com/Yasser-Essafi/SRM/internal/repository"
	"github.com/Yasser-Essafi/SRM/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	var store repository.RecordStore
	switch cfg.Store.Driver {
	case "memory":
		data := repository.DemoDataset()
		for _, warning := range data.Validate() {
			log.Warn().Str("warning", warning).Msg("dataset inconsistency")
		}
		store = repository.NewMemoryStore(data)
		log.Info().Msg("using in-memory record store with demo data")
	default:
		database, err := db.New(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect database")
		}
		if cfg.Store.SeedDemoData {
			if err := db.Seed(database, repository.DemoDataset(), log); err != nil {
				log.Fatal().Err(err).Msg("failed to seed demo data")
			}
		}
		store = repository.NewSQLStore(database)
	}

	statusService := service.NewStatusService(store, log)
	reportService := service.NewReportService(
		store,
		report.NewExcelGenerator(),
		report.NewPDFGenerator(cfg.Report.FontPath),
		log,
	)

	var replier httphandler.Replier
	if cfg.Agent.Enabled {
		llm := agent.NewOpenAIClient(cfg.Agent)
		toolbox := agent.NewToolbox(statusService)
		replier = agent.New(llm, toolbox, cfg.Agent.MaxToolLoop, log)
	} else {
		log.Warn().Msg("assistant disabled, /chat will return 503")
	}

	ocrClient := ocr.NewClient(cfg.OCR.Endpoint)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(statusService, reportService, replier, ocrClient, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("store", cfg.Store.Driver).Msg("starting srm service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
