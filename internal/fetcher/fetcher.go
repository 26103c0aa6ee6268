package fetcher

import (
	"context"

	"PowerCast/internal/model"
)

// GridFetcher fetches a fresh forecast grid snapshot.
type GridFetcher interface {
	FetchGrid(ctx context.Context) ([]model.ForecastPoint, error)
	Name() string
}

// PriceFetcher fetches recent daily spot prices, newest last.
type PriceFetcher interface {
	FetchDailyPrices(ctx context.Context, days int) ([]model.PriceRecord, error)
	Name() string
}
