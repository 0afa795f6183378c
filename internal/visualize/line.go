package visualize

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"TempHarvest/internal/calculator"
)

func monthTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 12)
	for m := 1; m <= 12; m++ {
		ticks = append(ticks, chart.Tick{Value: float64(m), Label: strconv.Itoa(m)})
	}
	return ticks
}

// yearSeries returns the months of row that hold data and their values.
func yearSeries(row [12]float64) (xs, ys []float64) {
	for m, v := range row {
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, float64(m+1))
		ys = append(ys, v)
	}
	return xs, ys
}

// LineAnimation draws one line per year of mean MaxTemp by month. Frame i
// shows years 0..i.
func (r *Renderer) LineAnimation(ds *Dataset, w io.Writer) error {
	if ds.Empty() {
		return errors.New("line animation: no data to plot")
	}
	pivot := calculator.PivotMean(ds.High)
	low, high, err := calculator.Range(pivot.Values())
	if err != nil {
		return fmt.Errorf("line animation: %w", err)
	}
	yRange := &chart.ContinuousRange{Min: math.Floor(low) - 2, Max: math.Ceil(high) + 2}

	frames := make([][]byte, 0, len(pivot.Years))
	var series []chart.Series
	for i, year := range pivot.Years {
		xs, ys := yearSeries(pivot.Cells[i])
		series = append(series, chart.ContinuousSeries{
			Name:    strconv.Itoa(year),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
				DotColor:    chart.GetDefaultColor(i),
				DotWidth:    3,
			},
		})

		graph := chart.Chart{
			Title:  fmt.Sprintf("%s monthly mean high, %d", r.Title, year),
			Width:  r.Width,
			Height: r.Height,
			Background: chart.Style{
				Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
			},
			XAxis: chart.XAxis{
				Name:  "Month",
				Range: &chart.ContinuousRange{Min: 1, Max: 12},
				Ticks: monthTicks(),
			},
			YAxis: chart.YAxis{
				Name:  "Temperature (°C)",
				Range: yRange,
			},
			Series: append([]chart.Series(nil), series...),
		}
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}

		var buf bytes.Buffer
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return fmt.Errorf("line animation: render %d: %w", year, err)
		}
		frames = append(frames, buf.Bytes())
	}
	return encodeAnimation(w, frames)
}
