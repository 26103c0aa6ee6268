package model

import "time"

// ForecastHorizonDays is the length of every forecast series: today plus
// eight more days.
const ForecastHorizonDays = 9

// DailyForecast is one day of a grid point's forecast series. Day is the
// zero-based offset from today and matches the entry's position in the
// owning Forecasts slice.
type DailyForecast struct {
	Day           int     `json:"day"`
	WindSpeed     float64 `json:"windSpeed"`     // m/s
	WindDirection float64 `json:"windDirection"` // degrees 0-360
	Temperature   float64 `json:"temperature"`   // Celsius
	Humidity      float64 `json:"humidity"`      // percent
}

// ForecastPoint is a single geographic sample point carrying up to
// ForecastHorizonDays of forecasts.
type ForecastPoint struct {
	Lat       float64         `json:"lat"`
	Lon       float64         `json:"lon"`
	Forecasts []DailyForecast `json:"forecasts"`
}

// ForecastGridRecord is the persisted form of a full grid snapshot.
// It is replaced wholesale on every fetch.
type ForecastGridRecord struct {
	Generated  time.Time       `json:"generated"`
	PointCount int             `json:"pointCount"`
	Data       []ForecastPoint `json:"data"`
}
