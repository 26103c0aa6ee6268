package model

import "time"

// PriceLevel buckets a predicted average daily price.
type PriceLevel string

const (
	PriceLow      PriceLevel = "LOW"
	PriceNormal   PriceLevel = "NORMAL"
	PriceHigh     PriceLevel = "HIGH"
	PriceVeryHigh PriceLevel = "VERY_HIGH"
)

// HourlyPrediction is one predicted hour of a day.
type HourlyPrediction struct {
	Hour  int     `json:"hour"`
	Price float64 `json:"price"`
}

// Prediction is the full per-day prediction output.
type Prediction struct {
	Date              string             `json:"date"` // ISO date, 2006-01-02
	DayName           string             `json:"dayName"`
	AvgWindSpeed      float64            `json:"avgWindSpeed"`
	AvgTemperature    float64            `json:"avgTemperature"`
	PredictedPrice    float64            `json:"predictedPrice"`
	PriceLevel        PriceLevel         `json:"priceLevel"`
	HourlyPredictions []HourlyPrediction `json:"hourlyPredictions"`
	Confidence        float64            `json:"confidence"`
}

// PredictionRecord is the persisted 9-day prediction set, regenerated and
// overwritten on every predictor run. The dashboard reads it as-is.
type PredictionRecord struct {
	Generated   time.Time    `json:"generated"`
	Model       string       `json:"model"` // model version tag
	Predictions []Prediction `json:"predictions"`
}
