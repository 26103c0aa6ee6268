package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"PowerCast/internal/fetcher"
	"PowerCast/internal/model"
	"PowerCast/internal/notifier"
	"PowerCast/internal/predictor"
	"PowerCast/internal/recorder"
	"PowerCast/internal/store"
	"PowerCast/internal/trainer"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks. A single mutex serializes fetch, train
// and predict so a fit/save never interleaves with a load/predict on the
// same persisted artifacts.
type Scheduler struct {
	Cron      *cron.Cron
	Ctx       context.Context
	Grid      fetcher.GridFetcher
	Prices    fetcher.PriceFetcher
	PriceDays int
	Store     *store.Store
	Trainer   *trainer.Trainer
	Predictor *predictor.Predictor
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder

	mu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, grid fetcher.GridFetcher, prices fetcher.PriceFetcher, priceDays int,
	st *store.Store, tr *trainer.Trainer, pr *predictor.Predictor, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Ctx:       ctx,
		Grid:      grid,
		Prices:    prices,
		PriceDays: priceDays,
		Store:     st,
		Trainer:   tr,
		Predictor: pr,
		Notifier:  tn,
		Recorder:  rec,
	}
}

// RegisterAll registers the fetch, train and predict tasks.
func (s *Scheduler) RegisterAll(fetchCron, trainCron, predictCron string) error {
	if _, err := s.Cron.AddFunc(fetchCron, s.fetchTask); err != nil {
		return fmt.Errorf("register fetch task: %w", err)
	}
	if _, err := s.Cron.AddFunc(trainCron, s.trainTask); err != nil {
		return fmt.Errorf("register train task: %w", err)
	}
	if _, err := s.Cron.AddFunc(predictCron, s.predictTask); err != nil {
		return fmt.Errorf("register predict task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunPipelineNow executes fetch, train and predict immediately (for manual
// trigger / RUN_ON_START).
func (s *Scheduler) RunPipelineNow() {
	s.fetchTask()
	s.trainTask()
	s.predictTask()
}

func (s *Scheduler) fetchTask() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("[INFO] running fetch task")
	ctx, cancel := context.WithTimeout(s.Ctx, 10*time.Minute)
	defer cancel()

	if s.Grid != nil {
		points, err := s.Grid.FetchGrid(ctx)
		s.recordFetch("grid", s.Grid.Name(), len(points), err)
		if err != nil {
			log.Printf("[ERROR] fetch grid: %v", err)
		} else if err := s.Store.SaveGrid(&model.ForecastGridRecord{
			Generated: time.Now(),
			Data:      points,
		}); err != nil {
			log.Printf("[ERROR] save grid: %v", err)
		} else {
			log.Printf("[INFO] grid updated: %d points from %s", len(points), s.Grid.Name())
		}
	}

	if s.Prices != nil {
		records, err := s.Prices.FetchDailyPrices(ctx, s.PriceDays)
		s.recordFetch("prices", s.Prices.Name(), len(records), err)
		if err != nil {
			log.Printf("[ERROR] fetch prices: %v", err)
		} else if err := s.Store.SavePrices(&model.PriceHistoryRecord{
			Generated: time.Now(),
			Source:    model.SourceExternal,
			Data:      records,
		}); err != nil {
			log.Printf("[ERROR] save prices: %v", err)
		} else {
			log.Printf("[INFO] price history updated: %d records from %s", len(records), s.Prices.Name())
		}
	}
}

func (s *Scheduler) trainTask() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("[INFO] running train task")
	if _, res, err := s.Trainer.Train(); err != nil {
		log.Printf("[ERROR] train: %v", err)
		s.trySend(fmt.Sprintf("❌ PowerCast training failed: %v", err))
	} else if res.R2 < 0 {
		log.Printf("[WARN] model fits worse than the mean: R²=%.4f", res.R2)
	}
}

func (s *Scheduler) predictTask() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("[INFO] running predict task")
	rec, err := s.Predictor.Predict(time.Now())
	if err != nil {
		log.Printf("[ERROR] predict: %v", err)
		s.trySend(fmt.Sprintf("❌ PowerCast prediction failed: %v", err))
		return
	}
	s.trySend(notifier.FormatPredictionReport(rec))
}

func (s *Scheduler) recordFetch(kind, source string, count int, err error) {
	evt := &recorder.FetchEvent{Kind: kind, Source: source, Count: count, Success: err == nil}
	if err != nil {
		evt.Error = err.Error()
	}
	if rerr := s.Recorder.RecordFetch(evt); rerr != nil {
		log.Printf("[ERROR] record fetch event: %v", rerr)
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil || !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
