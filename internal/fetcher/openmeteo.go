package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"PowerCast/internal/model"
)

// Nordic sampling bounds for the fetched grid.
const (
	gridMinLat = 55.0
	gridMaxLat = 71.0
	gridMinLon = 4.0
	gridMaxLon = 32.0
)

// OpenMeteoFetcher fetches the forecast grid from an Open-Meteo compatible
// daily forecast API, one request per grid point. Requests go through a rate
// limiter so a full grid sweep stays inside the API's free-tier budget.
type OpenMeteoFetcher struct {
	Client  *http.Client
	BaseURL string
	Step    float64 // grid spacing in degrees
	limiter *rate.Limiter
}

// NewOpenMeteoFetcher creates a grid fetcher. requestsPerSec bounds the
// per-point request rate.
func NewOpenMeteoFetcher(baseURL string, step, requestsPerSec float64) *OpenMeteoFetcher {
	if step <= 0 {
		step = 2.0
	}
	return &OpenMeteoFetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: baseURL,
		Step:    step,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 5),
	}
}

func (f *OpenMeteoFetcher) Name() string { return "open-meteo" }

type openMeteoResponse struct {
	Daily struct {
		Time          []string  `json:"time"`
		WindSpeed     []float64 `json:"windspeed_10m_max"`
		WindDirection []float64 `json:"winddirection_10m_dominant"`
		Temperature   []float64 `json:"temperature_2m_max"`
		Humidity      []float64 `json:"relative_humidity_2m_mean"`
	} `json:"daily"`
}

// FetchGrid sweeps the Nordic bounds at the configured step and returns one
// ForecastPoint per coordinate. A failed point fails the whole sweep; the
// grid is replaced wholesale or not at all.
func (f *OpenMeteoFetcher) FetchGrid(ctx context.Context) ([]model.ForecastPoint, error) {
	var points []model.ForecastPoint
	for lat := gridMinLat; lat <= gridMaxLat; lat += f.Step {
		for lon := gridMinLon; lon <= gridMaxLon; lon += f.Step {
			if err := f.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
			p, err := f.fetchPoint(ctx, lat, lon)
			if err != nil {
				return nil, fmt.Errorf("fetch point (%.1f, %.1f): %w", lat, lon, err)
			}
			points = append(points, p)
		}
	}
	return points, nil
}

func (f *OpenMeteoFetcher) fetchPoint(ctx context.Context, lat, lon float64) (model.ForecastPoint, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("daily", "windspeed_10m_max,winddirection_10m_dominant,temperature_2m_max,relative_humidity_2m_mean")
	q.Set("forecast_days", fmt.Sprintf("%d", model.ForecastHorizonDays))
	q.Set("timezone", "UTC")
	u := fmt.Sprintf("%s/v1/forecast?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.ForecastPoint{}, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return model.ForecastPoint{}, fmt.Errorf("open-meteo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ForecastPoint{}, fmt.Errorf("open-meteo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.ForecastPoint{}, fmt.Errorf("open-meteo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var om openMeteoResponse
	if err := json.Unmarshal(body, &om); err != nil {
		return model.ForecastPoint{}, fmt.Errorf("open-meteo decode: %w", err)
	}
	if len(om.Daily.Time) == 0 {
		return model.ForecastPoint{}, fmt.Errorf("open-meteo: no daily data returned")
	}

	n := len(om.Daily.Time)
	if n > model.ForecastHorizonDays {
		n = model.ForecastHorizonDays
	}
	forecasts := make([]model.DailyForecast, 0, n)
	for day := 0; day < n; day++ {
		forecasts = append(forecasts, model.DailyForecast{
			Day:           day,
			WindSpeed:     at(om.Daily.WindSpeed, day),
			WindDirection: at(om.Daily.WindDirection, day),
			Temperature:   at(om.Daily.Temperature, day),
			Humidity:      atDefault(om.Daily.Humidity, day, 50),
		})
	}
	return model.ForecastPoint{Lat: lat, Lon: lon, Forecasts: forecasts}, nil
}

func at(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

func atDefault(vals []float64, i int, def float64) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return def
}
