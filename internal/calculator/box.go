package calculator

import (
	"errors"
	"math"
	"sort"
)

// BoxStats summarises one boxplot column.
type BoxStats struct {
	N           int
	Q1          float64
	Median      float64
	Q3          float64
	WhiskerLow  float64
	WhiskerHigh float64
	Outliers    []float64
}

// Quantile returns the q-th quantile of sorted using linear interpolation
// between closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// ComputeBox computes quartiles and whiskers at 1.5 IQR. Whiskers end at
// the most extreme values inside the fences; values beyond are outliers.
func ComputeBox(values []float64) (BoxStats, error) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return BoxStats{}, errors.New("no values for boxplot")
	}
	sort.Float64s(sorted)

	s := BoxStats{
		N:      len(sorted),
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
	}
	iqr := s.Q3 - s.Q1
	lowFence := s.Q1 - 1.5*iqr
	highFence := s.Q3 + 1.5*iqr

	s.WhiskerLow = s.Q1
	s.WhiskerHigh = s.Q3
	for _, v := range sorted {
		if v >= lowFence {
			s.WhiskerLow = math.Min(v, s.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			s.WhiskerHigh = math.Max(sorted[i], s.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			s.Outliers = append(s.Outliers, v)
		}
	}
	return s, nil
}
