package feature

import (
	"time"

	"PowerCast/internal/model"
)

// VectorLen is the fixed feature vector length. The order of entries is part
// of the model contract: the weight vector aligns positionally.
const VectorLen = 7

// Finland bounding box used for regional averaging.
const (
	FinlandMinLat = 60.0
	FinlandMaxLat = 70.0
	FinlandMinLon = 20.0
	FinlandMaxLon = 32.0
)

// Names returns the feature names in vector order. They are persisted with
// the model for documentation; prediction never reads them.
func Names() []string {
	return []string{
		"windSpeed",
		"temperature",
		"isWinter",
		"isMorningPeak",
		"isEveningPeak",
		"isWeekend",
		"windSpeedWinter",
	}
}

// InFinland reports whether a grid point falls inside the Finland box.
func InFinland(p model.ForecastPoint) bool {
	return p.Lat >= FinlandMinLat && p.Lat <= FinlandMaxLat &&
		p.Lon >= FinlandMinLon && p.Lon <= FinlandMaxLon
}

// RegionalAverages returns the mean wind speed and temperature over all
// Finland-box points at the given forecast day index, plus the number of
// points averaged. A point whose series is shorter than dayIndex contributes
// zero to the sums but still counts in the denominator.
func RegionalAverages(points []model.ForecastPoint, dayIndex int) (windSpeed, temperature float64, count int) {
	var sumWind, sumTemp float64
	for _, p := range points {
		if !InFinland(p) {
			continue
		}
		count++
		if dayIndex >= 0 && dayIndex < len(p.Forecasts) {
			sumWind += p.Forecasts[dayIndex].WindSpeed
			sumTemp += p.Forecasts[dayIndex].Temperature
		}
	}
	if count == 0 {
		return 0, 0, 0
	}
	return sumWind / float64(count), sumTemp / float64(count), count
}

// SyntheticConditions derives plausible wind/temperature for dates where no
// forecast exists. The seed is the byte sum of the date string, so a given
// date always maps to the same conditions: windSpeed in [3,11) and
// temperature in [-5,15).
func SyntheticConditions(date string) (windSpeed, temperature float64) {
	seed := 0
	for _, b := range []byte(date) {
		seed += int(b)
	}
	v := float64(seed%100) / 100.0
	return 3 + v*8, -5 + v*20
}

// IsWinter reports whether the month falls in the Nordic heating season
// (November through March).
func IsWinter(m time.Month) bool {
	return m >= time.November || m <= time.March
}

// Assemble builds the feature vector from regional conditions and the
// calendar context of the target time.
func Assemble(windSpeed, temperature float64, target time.Time) []float64 {
	hour := target.Hour()
	wd := target.Weekday()

	v := make([]float64, VectorLen)
	v[0] = windSpeed
	v[1] = temperature
	v[2] = boolToFloat(IsWinter(target.Month()))
	v[3] = boolToFloat(hour >= 7 && hour <= 9)
	v[4] = boolToFloat(hour >= 17 && hour <= 20)
	v[5] = boolToFloat(wd == time.Saturday || wd == time.Sunday)
	v[6] = v[0] * v[2]
	return v
}

// Extract builds the feature vector for a target time and its day index into
// the forecast horizon. When the index is outside the horizon or the grid
// has no Finland points, wind and temperature come from the deterministic
// synthetic branch instead of the grid.
func Extract(points []model.ForecastPoint, target time.Time, dayIndex int) []float64 {
	windSpeed, temperature, count := RegionalAverages(points, dayIndex)
	if dayIndex < 0 || dayIndex >= model.ForecastHorizonDays || count == 0 {
		windSpeed, temperature = SyntheticConditions(target.Format("2006-01-02"))
	}
	return Assemble(windSpeed, temperature, target)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
