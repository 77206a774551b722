package calculator

import (
	"errors"
	"math"

	"GoldBoard/internal/model"
)

// DayRange scans the bars sharing the newest bar's calendar day and
// returns the session high and low.
func DayRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	last := bars[len(bars)-1].Time
	y, m, d := last.Date()

	high = math.Inf(-1)
	low = math.Inf(1)
	for i := len(bars) - 1; i >= 0; i-- {
		by, bm, bd := bars[i].Time.Date()
		if by != y || bm != m || bd != d {
			break
		}
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}
