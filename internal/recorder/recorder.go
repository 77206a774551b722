package recorder

import (
	"math"

	"GoldBoard/internal/model"
	"GoldBoard/internal/news"
)

// SnapshotRecord holds the scalar figures of one successful refresh.
type SnapshotRecord struct {
	Symbol    string
	Price     float64
	Change    float64
	ChangePct float64
	SMAFast   float64
	SMASlow   float64
	RSI       float64
	DayHigh   float64
	DayLow    float64
}

// FetchErrorEvent records a failed data refresh.
type FetchErrorEvent struct {
	Source string
	Detail string
}

// Recorder persists refresh history for later analysis.
type Recorder interface {
	RecordSnapshot(rec *SnapshotRecord) error
	RecordNews(items []news.Item) error
	RecordFetchError(evt *FetchErrorEvent) error
	Close() error
}

// FromSnapshot flattens a snapshot into its scalar record. Undefined
// indicator positions (NaN) are stored as SQL NULL by the recorder.
func FromSnapshot(snap *model.Snapshot) *SnapshotRecord {
	rec := &SnapshotRecord{
		Symbol:    snap.Series.Symbol,
		Price:     snap.Price,
		Change:    snap.Change,
		ChangePct: snap.ChangePct,
		RSI:       snap.RSI,
		DayHigh:   snap.DayHigh,
		DayLow:    snap.DayLow,
	}
	rec.SMAFast = lastValue(snap.Frame.SMAFast)
	rec.SMASlow = lastValue(snap.Frame.SMASlow)
	return rec
}

func lastValue(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}
