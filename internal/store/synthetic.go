package store

import (
	"math/rand"
	"time"

	"PowerCast/internal/feature"
	"PowerCast/internal/model"
)

// Nordic bounds for the synthetic grid. Wider than the Finland box so the
// regional filter has realistic out-of-range points too.
const (
	nordicMinLat = 55.0
	nordicMaxLat = 71.0
	nordicMinLon = 4.0
	nordicMaxLon = 32.0
	gridStep     = 2.0
)

// SyntheticGrid generates a plausible forecast grid across the Nordic
// bounds. Each point runs a smooth random walk over the 9-day horizon; wind
// speed never drops below 0.5 m/s.
func SyntheticGrid(now time.Time) *model.ForecastGridRecord {
	var points []model.ForecastPoint
	for lat := nordicMinLat; lat <= nordicMaxLat; lat += gridStep {
		for lon := nordicMinLon; lon <= nordicMaxLon; lon += gridStep {
			points = append(points, syntheticPoint(lat, lon))
		}
	}
	return &model.ForecastGridRecord{
		Generated:  now,
		PointCount: len(points),
		Data:       points,
	}
}

func syntheticPoint(lat, lon float64) model.ForecastPoint {
	wind := 3 + rand.Float64()*9
	// Southern points start warmer.
	temp := 10 - (lat-nordicMinLat)*0.6 + (rand.Float64()*6 - 3)
	dir := rand.Float64() * 360
	humidity := 40 + rand.Float64()*40

	forecasts := make([]model.DailyForecast, model.ForecastHorizonDays)
	for day := range forecasts {
		forecasts[day] = model.DailyForecast{
			Day:           day,
			WindSpeed:     wind,
			WindDirection: dir,
			Temperature:   temp,
			Humidity:      humidity,
		}
		wind += rand.Float64()*3 - 1.5
		if wind < 0.5 {
			wind = 0.5
		}
		temp += rand.Float64()*4 - 2
		dir += rand.Float64()*60 - 30
		if dir < 0 {
			dir += 360
		}
		if dir >= 360 {
			dir -= 360
		}
		humidity += rand.Float64()*10 - 5
		if humidity < 20 {
			humidity = 20
		}
		if humidity > 100 {
			humidity = 100
		}
	}
	return model.ForecastPoint{Lat: lat, Lon: lon, Forecasts: forecasts}
}

// SyntheticPriceHistory generates 31 daily sample records, from 30 days back
// through today, using a time-of-day and season heuristic plus noise. Prices
// never go negative.
func SyntheticPriceHistory(now time.Time) *model.PriceHistoryRecord {
	records := make([]model.PriceRecord, 0, 31)
	for back := 30; back >= 0; back-- {
		date := now.AddDate(0, 0, -back)
		records = append(records, syntheticDay(date))
	}
	return &model.PriceHistoryRecord{
		Generated: now,
		Source:    model.SourceSample,
		Data:      records,
	}
}

func syntheticDay(date time.Time) model.PriceRecord {
	base := 45.0
	if feature.IsWinter(date.Month()) {
		base += 15
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		base -= 8
	}

	hourly := make([]model.HourlyPrice, 24)
	sum := 0.0
	for h := 0; h < 24; h++ {
		price := base
		switch {
		case h >= 7 && h <= 9:
			price += 20
		case h >= 17 && h <= 20:
			price += 25
		case h <= 5:
			price -= 10
		}
		price += rand.Float64()*16 - 8
		if price < 0 {
			price = 0
		}
		hourly[h] = model.HourlyPrice{Hour: h, Price: price}
		sum += price
	}

	return model.PriceRecord{
		Date:         date.Format("2006-01-02"),
		AvgPrice:     sum / 24,
		HourlyPrices: hourly,
	}
}
