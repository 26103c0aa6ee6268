package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"PowerCast/internal/config"
	"PowerCast/internal/fetcher"
	"PowerCast/internal/notifier"
	"PowerCast/internal/predictor"
	"PowerCast/internal/recorder"
	"PowerCast/internal/scheduler"
	"PowerCast/internal/store"
	"PowerCast/internal/trainer"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PowerCast starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("[FATAL] init store: %v", err)
	}

	// Init fetchers
	gridFetcher := fetcher.NewOpenMeteoFetcher(cfg.DataSource.ForecastBaseURL, cfg.DataSource.GridStep, cfg.DataSource.RequestsPerSec)
	var priceFetcher fetcher.PriceFetcher = fetcher.NewSpotPriceFetcher(cfg.DataSource.PriceBaseURL)
	priceFetcher = fetcher.NewRateLimitedPriceFetcher(priceFetcher, 0.5, 2)
	log.Printf("[INFO] data sources: %s, %s", gridFetcher.Name(), priceFetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Storage.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Storage.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init pipeline stages
	tr := trainer.New(st, rec)
	pr := predictor.New(st, tr, rec)

	// Init Telegram notifier (optional)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if tn.Enabled() {
		log.Println("[INFO] Telegram alerts enabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, gridFetcher, priceFetcher, cfg.DataSource.PriceDays, st, tr, pr, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.FetchCron, cfg.Schedule.TrainCron, cfg.Schedule.PredictCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run the full pipeline immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing pipeline now")
		go sched.RunPipelineNow()
	}

	log.Println("[INFO] PowerCast is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] PowerCast stopped")
}
