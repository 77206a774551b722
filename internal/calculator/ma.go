package calculator

import "math"

// SMASeries computes the simple moving average of prices over a trailing
// window, aligned to the input index. Positions before window-1 prices
// have accumulated hold NaN.
func SMASeries(prices []float64, window int) []float64 {
	out := make([]float64, len(prices))
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
