package calculator

import (
	"errors"
	"fmt"

	"GoldBoard/internal/model"
)

// Smoothing selects the averaging rule applied to RSI gains and losses.
type Smoothing string

const (
	// SmoothingSimple uses a plain rolling mean over the lookback window.
	SmoothingSimple Smoothing = "simple"
	// SmoothingExponential uses an EWMA with span equal to the lookback.
	SmoothingExponential Smoothing = "exponential"
)

// ParseSmoothing maps a config string to a Smoothing value.
func ParseSmoothing(s string) (Smoothing, error) {
	switch Smoothing(s) {
	case SmoothingSimple, SmoothingExponential:
		return Smoothing(s), nil
	default:
		return "", fmt.Errorf("unknown rsi smoothing %q", s)
	}
}

var (
	// ErrEmptyInput is returned when a frame is requested for zero bars.
	ErrEmptyInput = errors.New("empty input series")
	// ErrInvalidParameter is returned for non-positive windows or lookbacks.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Params holds the indicator windows for one frame computation.
type Params struct {
	Fast      int
	Slow      int
	RSIPeriod int
	Smoothing Smoothing
}

// DefaultParams returns the dashboard defaults: SMA 20/50, RSI 14
// with exponential smoothing.
func DefaultParams() Params {
	return Params{Fast: 20, Slow: 50, RSIPeriod: 14, Smoothing: SmoothingExponential}
}

func (p Params) validate() error {
	if p.Fast <= 0 {
		return fmt.Errorf("%w: fast window %d", ErrInvalidParameter, p.Fast)
	}
	if p.Slow <= 0 {
		return fmt.Errorf("%w: slow window %d", ErrInvalidParameter, p.Slow)
	}
	if p.RSIPeriod <= 0 {
		return fmt.Errorf("%w: rsi lookback %d", ErrInvalidParameter, p.RSIPeriod)
	}
	if p.Smoothing != SmoothingSimple && p.Smoothing != SmoothingExponential {
		return fmt.Errorf("%w: rsi smoothing %q", ErrInvalidParameter, p.Smoothing)
	}
	return nil
}

// ComputeFrame derives the SMA and RSI series for the given bars.
// The input is read only; positions without enough history hold NaN.
// The same bars and params always produce identical output.
func ComputeFrame(bars []model.OHLCV, params Params) (*model.IndicatorFrame, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrEmptyInput
	}

	closes := extractCloses(bars)
	return &model.IndicatorFrame{
		Bars:    bars,
		SMAFast: SMASeries(closes, params.Fast),
		SMASlow: SMASeries(closes, params.Slow),
		RSI:     RSISeries(closes, params.RSIPeriod, params.Smoothing),
	}, nil
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
