package calculator

import (
	"errors"
	"math"
)

// Range returns the lowest and highest non-NaN values.
func Range(values []float64) (low, high float64, err error) {
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	if math.IsInf(low, 1) {
		return 0, 0, errors.New("no values provided")
	}
	return low, high, nil
}

// Position returns where v sits within [low, high] (0.0~1.0).
func Position(v, low, high float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (v - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
