package model

import "time"

// Price history sources.
const (
	SourceSample   = "sample"
	SourceExternal = "external"
)

// HourlyPrice is one hour of a day's spot price breakdown.
type HourlyPrice struct {
	Hour  int     `json:"hour"`
	Price float64 `json:"price"` // currency/MWh
}

// PriceRecord holds one calendar day of price history. HourlyPrices is
// optional; when present it has 24 entries.
type PriceRecord struct {
	Date         string        `json:"date"` // ISO date, 2006-01-02
	AvgPrice     float64       `json:"avgPrice"`
	HourlyPrices []HourlyPrice `json:"hourlyPrices,omitempty"`
}

// PriceHistoryRecord is the persisted form of the daily price history.
type PriceHistoryRecord struct {
	Generated time.Time     `json:"generated"`
	Source    string        `json:"source"` // "sample" or "external"
	Data      []PriceRecord `json:"data"`
}
