package fetcher

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"PowerCast/internal/model"
)

// RateLimitedPriceFetcher wraps a PriceFetcher with a token-bucket limiter.
type RateLimitedPriceFetcher struct {
	fetcher PriceFetcher
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedPriceFetcher creates a rate limited price fetcher. rps may
// be fractional for less than one request per second.
func NewRateLimitedPriceFetcher(fetcher PriceFetcher, rps float64, burst int) *RateLimitedPriceFetcher {
	return &RateLimitedPriceFetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [rate limited]", fetcher.Name()),
	}
}

// FetchDailyPrices waits for limiter permission, then forwards to the
// underlying fetcher.
func (r *RateLimitedPriceFetcher) FetchDailyPrices(ctx context.Context, days int) ([]model.PriceRecord, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.fetcher.FetchDailyPrices(ctx, days)
}

func (r *RateLimitedPriceFetcher) Name() string { return r.name }
