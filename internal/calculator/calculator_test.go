package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"GoldBoard/internal/model"
)

func barsFromCloses(closes []float64) []model.OHLCV {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * 15 * time.Minute),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestComputeFrame_EmptyInput(t *testing.T) {
	_, err := ComputeFrame(nil, DefaultParams())
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestComputeFrame_InvalidParams(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3})
	tests := []struct {
		name   string
		params Params
	}{
		{"zero fast", Params{Fast: 0, Slow: 50, RSIPeriod: 14, Smoothing: SmoothingSimple}},
		{"negative slow", Params{Fast: 20, Slow: -1, RSIPeriod: 14, Smoothing: SmoothingSimple}},
		{"negative rsi lookback", Params{Fast: 20, Slow: 50, RSIPeriod: -1, Smoothing: SmoothingSimple}},
		{"unknown smoothing", Params{Fast: 20, Slow: 50, RSIPeriod: 14, Smoothing: "wilder"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeFrame(bars, tt.params); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestComputeFrame_Determinism(t *testing.T) {
	bars := barsFromCloses([]float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13, 14})
	params := Params{Fast: 3, Slow: 5, RSIPeriod: 3, Smoothing: SmoothingExponential}

	a, err := ComputeFrame(bars, params)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	b, err := ComputeFrame(bars, params)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	for i := range a.RSI {
		if math.Float64bits(a.SMAFast[i]) != math.Float64bits(b.SMAFast[i]) ||
			math.Float64bits(a.SMASlow[i]) != math.Float64bits(b.SMASlow[i]) ||
			math.Float64bits(a.RSI[i]) != math.Float64bits(b.RSI[i]) {
			t.Fatalf("output differs at index %d", i)
		}
	}
}

func TestSMASeries_WindowBoundary(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13, 14}
	sma := SMASeries(closes, 3)

	for i := 0; i < 2; i++ {
		if model.Defined(sma[i]) {
			t.Errorf("index %d: expected NaN, got %f", i, sma[i])
		}
	}
	if sma[2] != 11.0 {
		t.Errorf("sma[2]: expected 11.0, got %f", sma[2])
	}
	if sma[10] != 13.0 {
		t.Errorf("sma[10]: expected 13.0, got %f", sma[10])
	}
}

func TestSMASeries_ConstantSeries(t *testing.T) {
	closes := make([]float64, 12)
	for i := range closes {
		closes[i] = 42.5
	}
	sma := SMASeries(closes, 5)
	for i, v := range sma {
		if i < 4 {
			if model.Defined(v) {
				t.Errorf("index %d: expected NaN, got %f", i, v)
			}
			continue
		}
		if math.Abs(v-42.5) > 1e-9 {
			t.Errorf("index %d: expected 42.5, got %f", i, v)
		}
	}
}

func TestRSISeries_DefinitionBoundary(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11}

	simple := RSISeries(closes, 3, SmoothingSimple)
	for i := 0; i < 3; i++ {
		if model.Defined(simple[i]) {
			t.Errorf("simple index %d: expected NaN, got %f", i, simple[i])
		}
	}
	if !model.Defined(simple[3]) {
		t.Error("simple index 3: expected defined value")
	}

	exp := RSISeries(closes, 3, SmoothingExponential)
	if model.Defined(exp[0]) {
		t.Errorf("exponential index 0: expected NaN, got %f", exp[0])
	}
	if !model.Defined(exp[1]) {
		t.Error("exponential index 1: expected defined value")
	}
}

func TestRSISeries_SimpleKnownValues(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13, 14}
	rsi := RSISeries(closes, 3, SmoothingSimple)

	// Deltas at indices 1..3 are +1,+1,-1: avg gain 2/3, avg loss 1/3.
	if math.Abs(rsi[3]-200.0/3.0) > 1e-9 {
		t.Errorf("rsi[3]: expected %f, got %f", 200.0/3.0, rsi[3])
	}
	// Deltas at indices 4..6 are -1,-1,+1: avg gain 1/3, avg loss 2/3.
	if math.Abs(rsi[6]-100.0/3.0) > 1e-9 {
		t.Errorf("rsi[6]: expected %f, got %f", 100.0/3.0, rsi[6])
	}
}

func TestRSISeries_Bounds(t *testing.T) {
	closes := []float64{100, 103, 99, 104, 98, 105, 97, 106, 96, 107, 95, 108, 94, 110, 93, 111}
	for _, rule := range []Smoothing{SmoothingSimple, SmoothingExponential} {
		rsi := RSISeries(closes, 5, rule)
		for i, v := range rsi {
			if !model.Defined(v) {
				continue
			}
			if v < 0 || v > 100 {
				t.Errorf("%s index %d: RSI %f out of [0,100]", rule, i, v)
			}
		}
	}
}

func TestRSISeries_Saturation(t *testing.T) {
	closes := []float64{100, 101, 101, 102, 103, 104, 104, 105, 106, 107}
	for _, rule := range []Smoothing{SmoothingSimple, SmoothingExponential} {
		rsi := RSISeries(closes, 4, rule)
		for i, v := range rsi {
			if !model.Defined(v) {
				continue
			}
			if v != 100.0 {
				t.Errorf("%s index %d: expected clamped 100 for non-decreasing closes, got %f", rule, i, v)
			}
		}
	}
}

func TestRSISeries_Floor(t *testing.T) {
	closes := []float64{110, 109, 108, 107, 106, 105, 104, 103, 102, 101}
	for _, rule := range []Smoothing{SmoothingSimple, SmoothingExponential} {
		rsi := RSISeries(closes, 4, rule)
		for i, v := range rsi {
			if !model.Defined(v) {
				continue
			}
			if v != 0.0 {
				t.Errorf("%s index %d: expected 0 for decreasing closes, got %f", rule, i, v)
			}
		}
	}
}

func TestRSISeries_SmoothingRulesDiffer(t *testing.T) {
	closes := []float64{50, 52, 51, 54, 53, 57, 55, 58, 54, 59, 56, 61, 57, 62, 58}
	period := 4
	simple := RSISeries(closes, period, SmoothingSimple)
	exp := RSISeries(closes, period, SmoothingExponential)

	differs := false
	for i := period; i < len(closes); i++ {
		if math.Abs(simple[i]-exp[i]) > 1e-6 {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected simple and exponential smoothing to produce different RSI values")
	}
}

func TestDayRange(t *testing.T) {
	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	bars := []model.OHLCV{
		{Time: day1.Add(10 * time.Hour), High: 500, Low: 10},
		{Time: day2.Add(9 * time.Hour), High: 105, Low: 95},
		{Time: day2.Add(10 * time.Hour), High: 110, Low: 98},
		{Time: day2.Add(11 * time.Hour), High: 108, Low: 92},
	}
	high, low, err := DayRange(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 110 || low != 92 {
		t.Errorf("expected range 92-110 for the last day only, got %f-%f", low, high)
	}

	if _, _, err := DayRange(nil); err == nil {
		t.Error("expected error for empty bars")
	}
}
