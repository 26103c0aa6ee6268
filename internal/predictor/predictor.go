package predictor

import (
	"fmt"
	"log"
	"time"

	"PowerCast/internal/feature"
	"PowerCast/internal/model"
	"PowerCast/internal/recorder"
	"PowerCast/internal/regression"
	"PowerCast/internal/store"
	"PowerCast/internal/trainer"
)

// ModelVersion tags the persisted prediction record.
const ModelVersion = "linear-v1"

// Price level thresholds over the daily average.
const (
	lowThreshold      = 40.0
	highThreshold     = 100.0
	veryHighThreshold = 150.0
)

// Predictor turns the persisted model and the current forecast grid into a
// 9-day price prediction set.
type Predictor struct {
	Store    *store.Store
	Trainer  *trainer.Trainer
	Recorder recorder.Recorder
}

// New creates a Predictor.
func New(st *store.Store, tr *trainer.Trainer, rec recorder.Recorder) *Predictor {
	return &Predictor{Store: st, Trainer: tr, Recorder: rec}
}

// ClassifyPrice buckets a daily average price. The very-high check runs
// before the high check so the top bucket stays reachable.
func ClassifyPrice(avg float64) model.PriceLevel {
	switch {
	case avg < lowThreshold:
		return model.PriceLow
	case avg > veryHighThreshold:
		return model.PriceVeryHigh
	case avg > highThreshold:
		return model.PriceHigh
	default:
		return model.PriceNormal
	}
}

// Confidence decays linearly with the day offset: 0.7 for today down to 0.3
// at the end of the horizon.
func Confidence(dayOffset int) float64 {
	return 0.7 - 0.05*float64(dayOffset)
}

// Predict generates and persists the full 9-day prediction set starting at
// now, overwriting any prior output. A missing or unreadable model triggers
// a fresh training run.
func (p *Predictor) Predict(now time.Time) (*model.PredictionRecord, error) {
	m, err := regression.LoadFile(p.Store.ModelPath())
	if err != nil {
		log.Printf("[WARN] load model: %v, training a fresh one", err)
		m, _, err = p.Trainer.Train()
		if err != nil {
			return nil, fmt.Errorf("train fallback model: %w", err)
		}
	}
	if got := len(m.Coefficients().Weights); got != feature.VectorLen {
		return nil, fmt.Errorf("model dimension mismatch: %d weights, want %d", got, feature.VectorLen)
	}

	grid, prov := p.Store.GridOrSynthetic(now)
	log.Printf("[INFO] predicting from %s grid (%d points)", prov, len(grid.Data))

	predictions := make([]model.Prediction, 0, model.ForecastHorizonDays)
	for day := 0; day < model.ForecastHorizonDays; day++ {
		date := now.AddDate(0, 0, day)
		windSpeed, temperature, _ := feature.RegionalAverages(grid.Data, day)

		hourly := make([]model.HourlyPrediction, 24)
		sum := 0.0
		for hour := 0; hour < 24; hour++ {
			ts := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
			price := m.Predict(feature.Assemble(windSpeed, temperature, ts))
			if price < 0 {
				price = 0
			}
			hourly[hour] = model.HourlyPrediction{Hour: hour, Price: price}
			sum += price
		}
		avg := sum / 24

		predictions = append(predictions, model.Prediction{
			Date:              date.Format("2006-01-02"),
			DayName:           date.Weekday().String(),
			AvgWindSpeed:      windSpeed,
			AvgTemperature:    temperature,
			PredictedPrice:    avg,
			PriceLevel:        ClassifyPrice(avg),
			HourlyPredictions: hourly,
			Confidence:        Confidence(day),
		})
	}

	rec := &model.PredictionRecord{
		Generated:   time.Now(),
		Model:       ModelVersion,
		Predictions: predictions,
	}
	if err := p.Store.SavePredictions(rec); err != nil {
		return nil, fmt.Errorf("save predictions: %w", err)
	}

	for day, pred := range predictions {
		if err := p.Recorder.RecordPredictionDay(&recorder.PredictionDay{
			Date:           pred.Date,
			DayOffset:      day,
			PredictedPrice: pred.PredictedPrice,
			PriceLevel:     string(pred.PriceLevel),
			Confidence:     pred.Confidence,
			AvgWindSpeed:   pred.AvgWindSpeed,
			AvgTemperature: pred.AvgTemperature,
		}); err != nil {
			log.Printf("[ERROR] record prediction day %d: %v", day, err)
		}
	}

	return rec, nil
}
