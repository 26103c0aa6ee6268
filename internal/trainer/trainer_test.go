package trainer

import (
	"math"
	"os"
	"testing"

	"PowerCast/internal/feature"
	"PowerCast/internal/recorder"
	"PowerCast/internal/regression"
	"PowerCast/internal/store"
)

func newTestTrainer(t *testing.T) *Trainer {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return New(st, recorder.NewNoopRecorder())
}

func TestTrain_SyntheticFallback(t *testing.T) {
	tr := newTestTrainer(t)

	m, res, err := tr.Train()
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if res.GridSource != store.Synthetic || res.PriceSource != store.Synthetic {
		t.Errorf("expected synthetic provenance, got grid=%s prices=%s", res.GridSource, res.PriceSource)
	}
	if res.Samples != 31 {
		t.Errorf("expected 31 samples from the sample history, got %d", res.Samples)
	}
	if math.IsNaN(res.R2) || math.IsInf(res.R2, 0) || res.R2 > 1 {
		t.Errorf("R² out of range: %v", res.R2)
	}
	if !m.Fitted() {
		t.Error("trained model is unfitted")
	}
	if got := len(m.Coefficients().Weights); got != feature.VectorLen {
		t.Errorf("model has %d weights, want %d", got, feature.VectorLen)
	}
}

func TestTrain_PersistsModel(t *testing.T) {
	tr := newTestTrainer(t)
	if _, _, err := tr.Train(); err != nil {
		t.Fatalf("train: %v", err)
	}
	if _, err := os.Stat(tr.Store.ModelPath()); err != nil {
		t.Fatalf("model file not written: %v", err)
	}
	m, err := regression.LoadFile(tr.Store.ModelPath())
	if err != nil {
		t.Fatalf("reload model: %v", err)
	}
	if got := len(m.Coefficients().Weights); got != feature.VectorLen {
		t.Errorf("persisted model has %d weights, want %d", got, feature.VectorLen)
	}
}

func TestRSquared_ZeroVariance(t *testing.T) {
	X := [][]float64{
		{1, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
	}
	y := []float64{50, 50}
	m := regression.New(feature.Names())
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if got := rSquared(m, X, y); got != 1.0 {
		t.Errorf("R² on constant targets = %v, want 1.0", got)
	}
}

func TestRSquared_PerfectFitApproachesOne(t *testing.T) {
	X := [][]float64{
		{1, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
		{3, 0, 0, 0, 0, 0, 0},
	}
	y := []float64{10, 20, 30}
	m := regression.New(feature.Names())
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if got := rSquared(m, X, y); got < 0.95 {
		t.Errorf("R² on near-perfect fit = %v, want >= 0.95", got)
	}
}
