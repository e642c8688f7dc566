package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"demand-forecaster/config"
	"demand-forecaster/predictor"
	"demand-forecaster/reference"
	"demand-forecaster/scraper/timeanddate"
	"demand-forecaster/services"
	"demand-forecaster/storage"
	"demand-forecaster/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ================== Bootstrap ====================
	logger := utils.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		return 1
	}
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("Electricity Demand Forecaster")
	logger.Info("Source: %s | Page wait: %s | Wind policy: %s", cfg.WeatherURL, cfg.PageWait, cfg.WindPolicy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// =================== Reference data and model ==========================
	ref, err := reference.Load(reference.Paths{
		Holidays:   cfg.HolidaysPath,
		Solar:      cfg.SolarPath,
		RealEstate: cfg.RealEstatePath,
	})
	if err != nil {
		logger.Error("Failed to load reference data: %v", err)
		return 1
	}

	model, err := predictor.LoadModel(cfg.ModelPath)
	if err != nil {
		logger.Error("Failed to load model: %v", err)
		return 1
	}
	adapter := predictor.NewAdapter(model, logger)
	if err := adapter.CheckSchema(); err != nil {
		logger.Error("Model %q cannot be used: %v", model.Name(), err)
		return 1
	}
	logger.Info("Loaded model %q", model.Name())

	// =================== Document store ========================================
	store, err := storage.NewPostgresStore(ctx, cfg.DocStoreURL, logger)
	if err != nil {
		logger.Error("Cannot connect to document store: %v", err)
		return 1
	}
	defer store.Close()

	if err := store.CreateTables(ctx); err != nil {
		logger.Error("Failed to prepare document store: %v", err)
		return 1
	}

	// =============== Outputs ===================================
	isCurrent := services.NewCurrentDayFilter(time.Now(), cfg.Location, cfg.CurrentDayOffset)
	sink := storage.NewSink(storage.Outputs{
		Forecast: storage.NewPredictionCSV(cfg.ForecastCSVPath, logger),
		AllData:  storage.NewPredictionCSV(cfg.AllDataCSVPath, logger),
		Features: storage.NewFeatureCSV(cfg.FeaturesCSVPath, logger),
		JSON:     storage.NewJSONExporter(cfg.AllDataCSVPath, cfg.JSONPath, logger),
	}, store, isCurrent, logger)
	if err := sink.Reset(); err != nil {
		logger.Error("Failed to reset per-run outputs: %v", err)
		return 1
	}

	// =============== Scraping ===================================
	scraper := timeanddate.New(cfg, logger)
	defer scraper.Close()

	observations, err := scraper.Scrape(ctx)
	if err != nil {
		logger.Error("Scraping failed: %v", err)
		return 1
	}
	if len(observations) == 0 {
		// still flushed below so the store matches the emptied forecast file
		logger.Warn("No hourly rows scraped, check the network connection or the page structure")
	}

	// =========== Prediction ======================
	builder := services.NewFeatureBuilder(ref, cfg.WindPolicy, logger)
	pipeline := services.NewPipeline(builder, adapter, sink, isCurrent, logger)
	report, err := pipeline.Run(ctx, observations)
	if err != nil {
		logger.Error("Run aborted: %v", err)
		return 1
	}

	services.PrintRunReport(report)

	fmt.Println(" Done! Forecast ->", cfg.ForecastCSVPath)
	fmt.Println(" History ->", cfg.AllDataCSVPath, "and", cfg.JSONPath)
	return 0
}
