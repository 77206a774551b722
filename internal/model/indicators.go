package model

import (
	"math"
	"time"
)

// IndicatorFrame augments a bar series with aligned indicator series.
// SMAFast, SMASlow and RSI have one value per bar index; positions with
// insufficient history hold NaN. A frame is computed fresh on every
// refresh and never mutated afterwards.
type IndicatorFrame struct {
	Bars    []OHLCV
	SMAFast []float64
	SMASlow []float64
	RSI     []float64
}

// Defined reports whether v holds a computed value rather than the
// NaN marker for insufficient history.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// LastRSI returns the RSI at the newest bar, or NaN if undefined.
func (f *IndicatorFrame) LastRSI() float64 {
	if len(f.RSI) == 0 {
		return math.NaN()
	}
	return f.RSI[len(f.RSI)-1]
}

// Snapshot is the result of one dashboard refresh: the fetched series,
// its indicator frame, and the headline figures derived from them.
type Snapshot struct {
	Series    PriceSeries
	Frame     *IndicatorFrame
	Price     float64
	Change    float64 // vs previous bar close
	ChangePct float64
	RSI       float64 // newest defined-or-NaN RSI value
	DayHigh   float64
	DayLow    float64
	FetchedAt time.Time
}
