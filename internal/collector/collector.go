package collector

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"

	"GoldBoard/internal/calculator"
	"GoldBoard/internal/model"
)

// ErrNoData is returned when a fetch succeeds but yields zero bars.
// An empty result is a retrievable failure, never fed to the calculator.
var ErrNoData = errors.New("no bars returned")

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price    float64
	Bars     []model.OHLCV
	Err      error
	PriceErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntradayBars(_ string, _, _ string) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(m.Price, 96), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	if m.PriceErr != nil {
		return 0, m.PriceErr
	}
	return m.Price, nil
}

// GenerateMockBars produces a deterministic drifting intraday series.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   base.Add(time.Duration(i) * 15 * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher    Fetcher
	Symbol     string
	Interval   string
	Window     string
	Params     calculator.Params
	MaxRetries uint
}

// NewCollector creates a new Collector with up to 3 fetch retries.
func NewCollector(fetcher Fetcher, symbol, interval, window string, params calculator.Params) *Collector {
	return &Collector{
		Fetcher:    fetcher,
		Symbol:     symbol,
		Interval:   interval,
		Window:     window,
		Params:     params,
		MaxRetries: 3,
	}
}

// Collect fetches market data, computes the indicator frame, and
// assembles a dashboard snapshot. Transient fetch failures are retried
// with exponential backoff before giving up.
func (c *Collector) Collect() (*model.Snapshot, error) {
	bars, err := c.fetchBarsWithRetry()
	if err != nil {
		return nil, fmt.Errorf("fetch intraday bars: %w", err)
	}

	frame, err := calculator.ComputeFrame(bars, c.Params)
	if err != nil {
		return nil, fmt.Errorf("compute frame: %w", err)
	}

	price, err := c.Fetcher.FetchCurrentPrice(c.Symbol)
	if err != nil {
		log.Printf("[WARN] fetch current price failed: %v, using last close", err)
		price = bars[len(bars)-1].Close
	}

	snap := &model.Snapshot{
		Series: model.PriceSeries{
			Symbol:    c.Symbol,
			Bars:      bars,
			FetchedAt: time.Now(),
		},
		Frame:     frame,
		Price:     price,
		RSI:       frame.LastRSI(),
		FetchedAt: time.Now(),
	}

	if n := len(bars); n > 1 {
		prev := bars[n-2].Close
		snap.Change = price - prev
		if prev != 0 {
			snap.ChangePct = snap.Change / prev * 100
		}
	}

	if high, low, err := calculator.DayRange(bars); err != nil {
		log.Printf("[WARN] day range calculation failed: %v", err)
	} else if !math.IsInf(high, -1) {
		snap.DayHigh = high
		snap.DayLow = low
	}

	return snap, nil
}

func (c *Collector) fetchBarsWithRetry() ([]model.OHLCV, error) {
	var bars []model.OHLCV
	op := func() error {
		fetched, err := c.Fetcher.FetchIntradayBars(c.Symbol, c.Interval, c.Window)
		if err != nil {
			return err
		}
		if len(fetched) == 0 {
			return ErrNoData
		}
		bars = fetched
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, uint64(c.MaxRetries))); err != nil {
		return nil, err
	}
	return bars, nil
}
