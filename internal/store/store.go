package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"PowerCast/internal/model"
)

// Provenance tells callers whether loaded data came from disk or from the
// synthetic fallback generators.
type Provenance string

const (
	Loaded    Provenance = "loaded"
	Synthetic Provenance = "synthetic"
)

// Store reads and writes the pipeline's persisted JSON artifacts under a
// single data directory.
type Store struct {
	Dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) GridPath() string        { return filepath.Join(s.Dir, "forecast_grid.json") }
func (s *Store) PricesPath() string      { return filepath.Join(s.Dir, "price_history.json") }
func (s *Store) ModelPath() string       { return filepath.Join(s.Dir, "model.json") }
func (s *Store) PredictionsPath() string { return filepath.Join(s.Dir, "predictions.json") }

// LoadGrid reads the persisted forecast grid snapshot.
func (s *Store) LoadGrid() (*model.ForecastGridRecord, error) {
	var rec model.ForecastGridRecord
	if err := readJSON(s.GridPath(), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveGrid replaces the persisted grid snapshot wholesale.
func (s *Store) SaveGrid(rec *model.ForecastGridRecord) error {
	rec.PointCount = len(rec.Data)
	return writeJSON(s.GridPath(), rec)
}

// LoadPrices reads the persisted price history.
func (s *Store) LoadPrices() (*model.PriceHistoryRecord, error) {
	var rec model.PriceHistoryRecord
	if err := readJSON(s.PricesPath(), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SavePrices replaces the persisted price history wholesale.
func (s *Store) SavePrices(rec *model.PriceHistoryRecord) error {
	return writeJSON(s.PricesPath(), rec)
}

// SavePredictions overwrites the prediction set read by the dashboard.
func (s *Store) SavePredictions(rec *model.PredictionRecord) error {
	return writeJSON(s.PredictionsPath(), rec)
}

// LoadPredictions reads the persisted prediction set.
func (s *Store) LoadPredictions() (*model.PredictionRecord, error) {
	var rec model.PredictionRecord
	if err := readJSON(s.PredictionsPath(), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GridOrSynthetic loads the grid snapshot, substituting a generated one when
// the load fails or the snapshot is empty. Load failure is never fatal; the
// pipeline favors availability over correctness when inputs are missing.
func (s *Store) GridOrSynthetic(now time.Time) (*model.ForecastGridRecord, Provenance) {
	rec, err := s.LoadGrid()
	if err == nil && len(rec.Data) > 0 {
		return rec, Loaded
	}
	if err != nil {
		log.Printf("[WARN] load forecast grid: %v, generating synthetic grid", err)
	} else {
		log.Println("[WARN] forecast grid is empty, generating synthetic grid")
	}
	return SyntheticGrid(now), Synthetic
}

// PricesOrSynthetic loads the price history, substituting generated sample
// data when the load fails or the history is empty.
func (s *Store) PricesOrSynthetic(now time.Time) (*model.PriceHistoryRecord, Provenance) {
	rec, err := s.LoadPrices()
	if err == nil && len(rec.Data) > 0 {
		return rec, Loaded
	}
	if err != nil {
		log.Printf("[WARN] load price history: %v, generating sample prices", err)
	} else {
		log.Println("[WARN] price history is empty, generating sample prices")
	}
	return SyntheticPriceHistory(now), Synthetic
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON writes via a temp file and rename so the dashboard, which polls
// these files, never reads a half-written record.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
