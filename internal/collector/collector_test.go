package collector

import (
	"errors"
	"math"
	"testing"
	"time"

	"GoldBoard/internal/calculator"
	"GoldBoard/internal/model"
)

func testBars(closes []float64) []model.OHLCV {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   base.Add(time.Duration(i) * 15 * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 500,
		}
	}
	return bars
}

func testParams() calculator.Params {
	return calculator.Params{Fast: 3, Slow: 5, RSIPeriod: 3, Smoothing: calculator.SmoothingSimple}
}

func TestCollect_Snapshot(t *testing.T) {
	bars := testBars([]float64{100, 102, 101, 103, 104, 105, 104, 106})
	fetcher := &MockFetcher{Price: 106.5, Bars: bars}
	col := NewCollector(fetcher, "XAUUSD", "15m", "1mo", testParams())

	snap, err := col.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if snap.Price != 106.5 {
		t.Errorf("expected price 106.5, got %f", snap.Price)
	}
	// Change is measured against the previous bar close (104).
	if math.Abs(snap.Change-2.5) > 1e-9 {
		t.Errorf("expected change 2.5, got %f", snap.Change)
	}
	if math.Abs(snap.ChangePct-2.5/104*100) > 1e-9 {
		t.Errorf("unexpected pct change %f", snap.ChangePct)
	}
	if !model.Defined(snap.RSI) {
		t.Error("expected defined RSI for 8 bars with lookback 3")
	}
	if snap.DayHigh != 107 || snap.DayLow != 99 {
		t.Errorf("expected day range 99-107, got %f-%f", snap.DayLow, snap.DayHigh)
	}
	if len(snap.Frame.SMAFast) != len(bars) {
		t.Errorf("frame series not aligned to bars: %d vs %d", len(snap.Frame.SMAFast), len(bars))
	}
}

func TestCollect_PriceFallback(t *testing.T) {
	bars := testBars([]float64{100, 101, 102, 103})
	fetcher := &MockFetcher{Bars: bars, PriceErr: errors.New("quote endpoint down")}
	col := NewCollector(fetcher, "XAUUSD", "15m", "1mo", testParams())

	snap, err := col.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if snap.Price != 103 {
		t.Errorf("expected fallback to last close 103, got %f", snap.Price)
	}
}

func TestCollect_EmptyResult(t *testing.T) {
	fetcher := &MockFetcher{Bars: []model.OHLCV{}}
	col := NewCollector(fetcher, "XAUUSD", "15m", "1mo", testParams())
	col.MaxRetries = 0

	if _, err := col.Collect(); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for empty fetch result, got %v", err)
	}
}

func TestCollect_FetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	col := NewCollector(&MockFetcher{Err: fetchErr}, "XAUUSD", "15m", "1mo", testParams())
	col.MaxRetries = 0

	if _, err := col.Collect(); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
}
