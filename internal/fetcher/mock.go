package fetcher

import (
	"context"
	"time"

	"PowerCast/internal/model"
	"PowerCast/internal/store"
)

// MockGridFetcher returns controllable fixed data for development and testing.
type MockGridFetcher struct {
	Points []model.ForecastPoint
	Err    error
}

func (m *MockGridFetcher) Name() string { return "mock" }

func (m *MockGridFetcher) FetchGrid(_ context.Context) ([]model.ForecastPoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Points != nil {
		return m.Points, nil
	}
	return store.SyntheticGrid(time.Now()).Data, nil
}

// MockPriceFetcher returns controllable fixed price data.
type MockPriceFetcher struct {
	Records []model.PriceRecord
	Err     error
}

func (m *MockPriceFetcher) Name() string { return "mock" }

func (m *MockPriceFetcher) FetchDailyPrices(_ context.Context, days int) ([]model.PriceRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Records != nil {
		return m.Records, nil
	}
	data := store.SyntheticPriceHistory(time.Now()).Data
	if len(data) > days {
		data = data[len(data)-days:]
	}
	return data, nil
}
