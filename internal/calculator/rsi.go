package calculator

import "math"

// RSISeries computes the Relative Strength Index of the close prices,
// aligned to the input index. Per-bar deltas split into gains and
// losses are averaged with the chosen smoothing rule; positions without
// enough history hold NaN.
//
// With simple smoothing the average is a rolling mean over the period
// most recent deltas, so the series is defined from index period on.
// With exponential smoothing the average is an EWMA with span equal to
// the period, seeded from the first delta, so the series is defined
// from index 1 on.
func RSISeries(closes []float64, period int, rule Smoothing) []float64 {
	n := len(closes)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if n < 2 {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	switch rule {
	case SmoothingSimple:
		var gainSum, lossSum float64
		for i := 1; i < n; i++ {
			gainSum += gains[i]
			lossSum += losses[i]
			if i > period {
				gainSum -= gains[i-period]
				lossSum -= losses[i-period]
			}
			if i >= period {
				out[i] = rsiValue(gainSum/float64(period), lossSum/float64(period))
			}
		}
	case SmoothingExponential:
		alpha := 2.0 / (float64(period) + 1.0)
		avgGain := gains[1]
		avgLoss := losses[1]
		out[1] = rsiValue(avgGain, avgLoss)
		for i := 2; i < n; i++ {
			avgGain = alpha*gains[i] + (1-alpha)*avgGain
			avgLoss = alpha*losses[i] + (1-alpha)*avgLoss
			out[i] = rsiValue(avgGain, avgLoss)
		}
	}
	return out
}

// rsiValue maps smoothed average gain and loss to the 0-100 oscillator.
// A zero average loss means RS is infinite, so the value clamps to 100.
func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
