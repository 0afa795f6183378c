package visualize

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"TempHarvest/internal/calculator"
)

const (
	boxTop    = 60
	boxLeft   = 70
	boxRight  = 30
	boxBottom = 50
)

// MonthlyBoxplot draws MaxTemp pooled per calendar month as a PNG.
func (r *Renderer) MonthlyBoxplot(ds *Dataset, w io.Writer) error {
	if ds.Empty() {
		return errors.New("boxplot: no data to plot")
	}
	pools := calculator.MonthlyPools(ds.High)

	var stats [12]*calculator.BoxStats
	var all []float64
	for m, pool := range pools {
		if len(pool) == 0 {
			continue
		}
		s, err := calculator.ComputeBox(pool)
		if err != nil {
			return fmt.Errorf("boxplot: month %d: %w", m+1, err)
		}
		stats[m] = &s
		all = append(all, pool...)
	}
	low, high, err := calculator.Range(all)
	if err != nil {
		return fmt.Errorf("boxplot: %w", err)
	}
	low, high = math.Floor(low)-1, math.Ceil(high)+1

	c, err := newCanvas(r.Width, r.Height)
	if err != nil {
		return err
	}
	right := r.Width - boxRight
	bottom := r.Height - boxBottom
	yOf := func(v float64) int {
		pos, _ := calculator.Position(v, low, high)
		return bottom - int(pos*float64(bottom-boxTop))
	}
	colW := float64(right-boxLeft) / 12

	text(c, fmt.Sprintf("%s daily high by month", r.Title), r.Width/2, boxTop/2+6, 14)

	for _, tick := range axisTicks(low, high, 6) {
		y := yOf(tick)
		line(c, boxLeft, y, right, y, colorGrid, 1)
		textRight(c, strconv.FormatFloat(tick, 'f', -1, 64), boxLeft-6, y+4, 10)
	}
	strokeRect(c, boxLeft, boxTop, right, bottom, colorBlack, 1)

	for m := 0; m < 12; m++ {
		cx := boxLeft + int((float64(m)+0.5)*colW)
		text(c, strconv.Itoa(m+1), cx, bottom+16, 10)
		s := stats[m]
		if s == nil {
			continue
		}
		half := int(colW * 0.3)
		capW := half / 2

		line(c, cx, yOf(s.WhiskerLow), cx, yOf(s.Q1), colorBlack, 1)
		line(c, cx, yOf(s.Q3), cx, yOf(s.WhiskerHigh), colorBlack, 1)
		line(c, cx-capW, yOf(s.WhiskerLow), cx+capW, yOf(s.WhiskerLow), colorBlack, 1)
		line(c, cx-capW, yOf(s.WhiskerHigh), cx+capW, yOf(s.WhiskerHigh), colorBlack, 1)

		fillRect(c, cx-half, yOf(s.Q3), cx+half, yOf(s.Q1), colorBox)
		strokeRect(c, cx-half, yOf(s.Q3), cx+half, yOf(s.Q1), colorBlack, 1)
		line(c, cx-half, yOf(s.Median), cx+half, yOf(s.Median), colorMedian, 2)

		for _, v := range s.Outliers {
			c.SetStrokeColor(colorBlack)
			c.SetFillColor(colorWhite)
			c.SetStrokeWidth(1)
			c.Circle(3, cx, yOf(v))
			c.FillStroke()
		}
	}
	text(c, "Month", (boxLeft+right)/2, bottom+34, 11)

	if err := c.Save(w); err != nil {
		return fmt.Errorf("boxplot: save: %w", err)
	}
	return nil
}

// axisTicks returns round values covering [low, high] with about n steps.
func axisTicks(low, high float64, n int) []float64 {
	if high <= low || n <= 0 {
		return []float64{low}
	}
	raw := (high - low) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, f := range []float64{1, 2, 5, 10} {
		if raw <= f*mag {
			step = f * mag
			break
		}
	}
	var ticks []float64
	for v := math.Ceil(low/step) * step; v <= high+1e-9; v += step {
		ticks = append(ticks, math.Round(v*1e6)/1e6)
	}
	return ticks
}
