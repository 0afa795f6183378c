package calculator

import (
	"math"
	"sort"
)

// Point is one daily value tagged with its calendar position.
type Point struct {
	Year  int
	Month int // 1 ~ 12
	Value float64
}

// Pivot is a year by month grid. Cells[i][m-1] holds the value for
// Years[i] and month m, or NaN when no data exists.
type Pivot struct {
	Years []int
	Cells [][12]float64
}

// Row returns the cells of year, or false if the year is absent.
func (p Pivot) Row(year int) ([12]float64, bool) {
	for i, y := range p.Years {
		if y == year {
			return p.Cells[i], true
		}
	}
	return [12]float64{}, false
}

// Values flattens every non-NaN cell.
func (p Pivot) Values() []float64 {
	var out []float64
	for _, row := range p.Cells {
		for _, v := range row {
			if !math.IsNaN(v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// PivotMean averages points per (year, month). Years are ascending.
func PivotMean(points []Point) Pivot {
	type acc struct {
		sum float64
		n   int
	}
	byYear := map[int]*[12]acc{}
	for _, pt := range points {
		if pt.Month < 1 || pt.Month > 12 || math.IsNaN(pt.Value) {
			continue
		}
		row, ok := byYear[pt.Year]
		if !ok {
			row = &[12]acc{}
			byYear[pt.Year] = row
		}
		row[pt.Month-1].sum += pt.Value
		row[pt.Month-1].n++
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	p := Pivot{Years: years, Cells: make([][12]float64, len(years))}
	for i, y := range years {
		row := byYear[y]
		for m := 0; m < 12; m++ {
			if row[m].n == 0 {
				p.Cells[i][m] = math.NaN()
				continue
			}
			p.Cells[i][m] = row[m].sum / float64(row[m].n)
		}
	}
	return p
}

// MonthlyPools groups values by calendar month regardless of year.
// Index 0 is January.
func MonthlyPools(points []Point) [12][]float64 {
	var pools [12][]float64
	for _, pt := range points {
		if pt.Month < 1 || pt.Month > 12 || math.IsNaN(pt.Value) {
			continue
		}
		pools[pt.Month-1] = append(pools[pt.Month-1], pt.Value)
	}
	return pools
}
