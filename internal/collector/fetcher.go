package collector

import "GoldBoard/internal/model"

// Fetcher defines the interface for fetching market data.
// Interval and window use Yahoo-style duration strings ("15m", "1mo").
type Fetcher interface {
	FetchIntradayBars(symbol, interval, window string) ([]model.OHLCV, error)
	FetchCurrentPrice(symbol string) (float64, error)
	Name() string
}
