package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"PowerCast/internal/model"
)

// SpotPriceFetcher fetches hourly Nordic spot prices from a
// porssisahko-style JSON API and aggregates them into daily records.
type SpotPriceFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewSpotPriceFetcher creates a spot price fetcher.
func NewSpotPriceFetcher(baseURL string) *SpotPriceFetcher {
	return &SpotPriceFetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: baseURL,
	}
}

func (f *SpotPriceFetcher) Name() string { return "spot-price" }

type spotPriceResponse struct {
	Prices []struct {
		Price     float64   `json:"price"` // currency/MWh
		StartDate time.Time `json:"startDate"`
	} `json:"prices"`
}

// FetchDailyPrices fetches the latest hourly prices and groups them into
// per-day records, oldest first, trimmed to the requested day count. Days
// with a partial hourly breakdown keep what they have; AvgPrice is always
// the mean of the hours present.
func (f *SpotPriceFetcher) FetchDailyPrices(ctx context.Context, days int) ([]model.PriceRecord, error) {
	u := fmt.Sprintf("%s/v1/latest-prices.json", f.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spot price fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spot price read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spot price: status %d, body: %s", resp.StatusCode, string(body))
	}

	var sp spotPriceResponse
	if err := json.Unmarshal(body, &sp); err != nil {
		return nil, fmt.Errorf("spot price decode: %w", err)
	}
	if len(sp.Prices) == 0 {
		return nil, fmt.Errorf("spot price: no data returned")
	}

	byDay := make(map[string][]model.HourlyPrice)
	for _, p := range sp.Prices {
		ts := p.StartDate.UTC()
		date := ts.Format("2006-01-02")
		byDay[date] = append(byDay[date], model.HourlyPrice{Hour: ts.Hour(), Price: p.Price})
	}

	dates := make([]string, 0, len(byDay))
	for date := range byDay {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > days {
		dates = dates[len(dates)-days:]
	}

	records := make([]model.PriceRecord, 0, len(dates))
	for _, date := range dates {
		hours := byDay[date]
		sort.Slice(hours, func(i, j int) bool { return hours[i].Hour < hours[j].Hour })
		sum := 0.0
		for _, h := range hours {
			sum += h.Price
		}
		records = append(records, model.PriceRecord{
			Date:         date,
			AvgPrice:     sum / float64(len(hours)),
			HourlyPrices: hours,
		})
	}
	return records, nil
}
