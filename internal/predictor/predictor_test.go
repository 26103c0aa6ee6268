package predictor

import (
	"math"
	"testing"
	"time"

	"PowerCast/internal/model"
	"PowerCast/internal/recorder"
	"PowerCast/internal/store"
	"PowerCast/internal/trainer"
)

func TestClassifyPrice_Boundaries(t *testing.T) {
	tests := []struct {
		avg  float64
		want model.PriceLevel
	}{
		{0, model.PriceLow},
		{39.99, model.PriceLow},
		{40, model.PriceNormal},
		{40.01, model.PriceNormal},
		{100, model.PriceNormal},
		{100.01, model.PriceHigh},
		{150, model.PriceHigh},
		{150.01, model.PriceVeryHigh},
		{500, model.PriceVeryHigh},
	}
	for _, tt := range tests {
		if got := ClassifyPrice(tt.avg); got != tt.want {
			t.Errorf("ClassifyPrice(%v) = %s, want %s", tt.avg, got, tt.want)
		}
	}
}

func TestConfidence_DecaysLinearly(t *testing.T) {
	if got := Confidence(0); got != 0.7 {
		t.Errorf("Confidence(0) = %v, want 0.7", got)
	}
	if got := Confidence(8); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("Confidence(8) = %v, want 0.3", got)
	}
	for day := 1; day < model.ForecastHorizonDays; day++ {
		if Confidence(day) >= Confidence(day-1) {
			t.Errorf("confidence did not decrease at day %d", day)
		}
	}
}

func newTestPredictor(t *testing.T) *Predictor {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	rec := recorder.NewNoopRecorder()
	return New(st, trainer.New(st, rec), rec)
}

func TestPredict_FullHorizon(t *testing.T) {
	p := newTestPredictor(t)
	now := time.Date(2026, time.August, 30, 6, 0, 0, 0, time.UTC)

	// No model on disk: Predict must train a fresh one and still succeed.
	rec, err := p.Predict(now)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if rec.Model != ModelVersion {
		t.Errorf("model tag = %q, want %q", rec.Model, ModelVersion)
	}
	if len(rec.Predictions) != model.ForecastHorizonDays {
		t.Fatalf("expected %d predictions, got %d", model.ForecastHorizonDays, len(rec.Predictions))
	}

	for day, pred := range rec.Predictions {
		wantDate := now.AddDate(0, 0, day).Format("2006-01-02")
		if pred.Date != wantDate {
			t.Errorf("day %d date = %s, want %s", day, pred.Date, wantDate)
		}
		if pred.DayName != now.AddDate(0, 0, day).Weekday().String() {
			t.Errorf("day %d name = %s", day, pred.DayName)
		}
		if len(pred.HourlyPredictions) != 24 {
			t.Fatalf("day %d has %d hourly predictions, want 24", day, len(pred.HourlyPredictions))
		}
		sum := 0.0
		for hour, h := range pred.HourlyPredictions {
			if h.Hour != hour {
				t.Errorf("day %d hour %d stored as %d", day, hour, h.Hour)
			}
			if h.Price < 0 {
				t.Errorf("day %d hour %d has negative price %v", day, hour, h.Price)
			}
			sum += h.Price
		}
		if avg := sum / 24; math.Abs(avg-pred.PredictedPrice) > 1e-9 {
			t.Errorf("day %d daily average %v does not match hourly mean %v", day, pred.PredictedPrice, avg)
		}
		if pred.PriceLevel != ClassifyPrice(pred.PredictedPrice) {
			t.Errorf("day %d level %s inconsistent with price %v", day, pred.PriceLevel, pred.PredictedPrice)
		}
		if math.Abs(pred.Confidence-Confidence(day)) > 1e-9 {
			t.Errorf("day %d confidence = %v, want %v", day, pred.Confidence, Confidence(day))
		}
	}
}

func TestPredict_OverwritesPriorOutput(t *testing.T) {
	p := newTestPredictor(t)
	now := time.Date(2026, time.August, 30, 6, 0, 0, 0, time.UTC)

	if _, err := p.Predict(now); err != nil {
		t.Fatalf("first predict: %v", err)
	}
	later := now.AddDate(0, 0, 1)
	if _, err := p.Predict(later); err != nil {
		t.Fatalf("second predict: %v", err)
	}

	persisted, err := p.Store.LoadPredictions()
	if err != nil {
		t.Fatalf("load predictions: %v", err)
	}
	if len(persisted.Predictions) != model.ForecastHorizonDays {
		t.Fatalf("expected a full fresh set, got %d predictions", len(persisted.Predictions))
	}
	if persisted.Predictions[0].Date != later.Format("2006-01-02") {
		t.Errorf("persisted set was not overwritten: first date %s", persisted.Predictions[0].Date)
	}
}
