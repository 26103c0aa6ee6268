package store

import (
	"testing"
	"time"

	"PowerCast/internal/model"
)

func TestGrid_SaveLoadRoundTrip(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	rec := &model.ForecastGridRecord{
		Generated: time.Now().UTC().Truncate(time.Second),
		Data: []model.ForecastPoint{
			{Lat: 62, Lon: 25, Forecasts: []model.DailyForecast{
				{Day: 0, WindSpeed: 5.5, WindDirection: 180, Temperature: -3, Humidity: 80},
			}},
		},
	}
	if err := st.SaveGrid(rec); err != nil {
		t.Fatalf("save grid: %v", err)
	}
	loaded, err := st.LoadGrid()
	if err != nil {
		t.Fatalf("load grid: %v", err)
	}
	if loaded.PointCount != 1 || len(loaded.Data) != 1 {
		t.Fatalf("expected 1 point, got count=%d len=%d", loaded.PointCount, len(loaded.Data))
	}
	got := loaded.Data[0].Forecasts[0]
	if got.WindSpeed != 5.5 || got.Temperature != -3 || got.Humidity != 80 {
		t.Errorf("forecast fields did not round-trip: %+v", got)
	}
}

func TestPrices_SaveLoadRoundTrip(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	rec := &model.PriceHistoryRecord{
		Generated: time.Now(),
		Source:    model.SourceExternal,
		Data: []model.PriceRecord{
			{Date: "2026-08-29", AvgPrice: 52.3, HourlyPrices: []model.HourlyPrice{{Hour: 0, Price: 41}}},
		},
	}
	if err := st.SavePrices(rec); err != nil {
		t.Fatalf("save prices: %v", err)
	}
	loaded, err := st.LoadPrices()
	if err != nil {
		t.Fatalf("load prices: %v", err)
	}
	if loaded.Source != model.SourceExternal {
		t.Errorf("source = %q, want %q", loaded.Source, model.SourceExternal)
	}
	if len(loaded.Data) != 1 || loaded.Data[0].AvgPrice != 52.3 {
		t.Errorf("price data did not round-trip: %+v", loaded.Data)
	}
}

func TestGridOrSynthetic_FallsBackOnMissingFile(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	rec, prov := st.GridOrSynthetic(time.Now())
	if prov != Synthetic {
		t.Fatalf("provenance = %q, want %q", prov, Synthetic)
	}
	if len(rec.Data) == 0 {
		t.Fatal("synthetic grid is empty")
	}
}

func TestPricesOrSynthetic_FallsBackOnEmptyHistory(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := st.SavePrices(&model.PriceHistoryRecord{Generated: time.Now(), Source: model.SourceExternal}); err != nil {
		t.Fatalf("save prices: %v", err)
	}
	rec, prov := st.PricesOrSynthetic(time.Now())
	if prov != Synthetic {
		t.Fatalf("provenance = %q, want %q", prov, Synthetic)
	}
	if len(rec.Data) == 0 {
		t.Fatal("synthetic price history is empty")
	}
}

func TestPricesOrSynthetic_PrefersLoadedData(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	saved := &model.PriceHistoryRecord{
		Generated: time.Now(),
		Source:    model.SourceExternal,
		Data:      []model.PriceRecord{{Date: "2026-08-29", AvgPrice: 60}},
	}
	if err := st.SavePrices(saved); err != nil {
		t.Fatalf("save prices: %v", err)
	}
	rec, prov := st.PricesOrSynthetic(time.Now())
	if prov != Loaded {
		t.Fatalf("provenance = %q, want %q", prov, Loaded)
	}
	if len(rec.Data) != 1 || rec.Data[0].AvgPrice != 60 {
		t.Errorf("loaded data not returned: %+v", rec.Data)
	}
}
