package trainer

import (
	"fmt"
	"log"
	"math"
	"time"

	"PowerCast/internal/feature"
	"PowerCast/internal/recorder"
	"PowerCast/internal/regression"
	"PowerCast/internal/store"
)

// defaultTarget substitutes for price records with no average price.
const defaultTarget = 50.0

// Trainer builds the design matrix from the persisted stores and fits a
// fresh model. Each run is a pure function of the loaded inputs; nothing is
// cached between runs.
type Trainer struct {
	Store    *store.Store
	Recorder recorder.Recorder
}

// Result reports the fit quality and data provenance of one training run.
type Result struct {
	Samples     int
	R2          float64
	GridSource  store.Provenance
	PriceSource store.Provenance
	Duration    time.Duration
}

// New creates a Trainer.
func New(st *store.Store, rec recorder.Recorder) *Trainer {
	return &Trainer{Store: st, Recorder: rec}
}

// Train loads the forecast grid and price history (substituting synthetic
// data when either is missing), fits a model, persists it, and records the
// run. The returned model is ready for prediction.
func (t *Trainer) Train() (*regression.Model, *Result, error) {
	start := time.Now()
	now := time.Now()

	grid, gridProv := t.Store.GridOrSynthetic(now)
	prices, priceProv := t.Store.PricesOrSynthetic(now)
	log.Printf("[INFO] training data: grid=%s (%d points), prices=%s (%d records)",
		gridProv, len(grid.Data), priceProv, len(prices.Data))

	X := make([][]float64, 0, len(prices.Data))
	y := make([]float64, 0, len(prices.Data))
	for i, pr := range prices.Data {
		date, err := time.Parse("2006-01-02", pr.Date)
		if err != nil {
			log.Printf("[WARN] skipping price record %d: bad date %q: %v", i, pr.Date, err)
			continue
		}
		X = append(X, feature.Extract(grid.Data, date, i))
		target := pr.AvgPrice
		if target == 0 {
			target = defaultTarget
		}
		y = append(y, target)
	}

	m := regression.New(feature.Names())
	if err := m.Fit(X, y); err != nil {
		return nil, nil, fmt.Errorf("fit model: %w", err)
	}

	// Fit runs without divergence detection; reject a poisoned model here
	// rather than persisting it.
	coef := m.Coefficients()
	for _, w := range append(append([]float64{}, coef.Weights...), coef.Bias) {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, nil, fmt.Errorf("model diverged during training: non-finite coefficient")
		}
	}

	r2 := rSquared(m, X, y)
	if err := m.SaveFile(t.Store.ModelPath()); err != nil {
		return nil, nil, fmt.Errorf("save model: %w", err)
	}

	res := &Result{
		Samples:     len(X),
		R2:          r2,
		GridSource:  gridProv,
		PriceSource: priceProv,
		Duration:    time.Since(start),
	}
	log.Printf("[INFO] model trained: %d samples, R²=%.4f, took %v", res.Samples, res.R2, res.Duration)

	if err := t.Recorder.RecordTraining(&recorder.TrainingRun{
		Samples:     res.Samples,
		R2:          res.R2,
		GridSource:  string(res.GridSource),
		PriceSource: string(res.PriceSource),
		DurationMS:  res.Duration.Milliseconds(),
	}); err != nil {
		log.Printf("[ERROR] record training run: %v", err)
	}

	return m, res, nil
}

// rSquared computes 1 - SSres/SStot over the training set. A zero-variance
// target series reports 1.0: the model trivially explains a constant, and
// Infinity must never reach the persisted report.
func rSquared(m *regression.Model, X [][]float64, y []float64) float64 {
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var ssRes, ssTot float64
	for i, row := range X {
		diff := y[i] - m.Predict(row)
		ssRes += diff * diff
		dev := y[i] - mean
		ssTot += dev * dev
	}
	if ssTot == 0 {
		log.Println("[WARN] zero variance in training targets, reporting R²=1.0")
		return 1.0
	}
	return 1 - ssRes/ssTot
}
