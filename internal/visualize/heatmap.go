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

// heatmap geometry
const (
	heatTop      = 60
	heatLeft     = 70
	heatBottom   = 40
	heatBarGap   = 30
	heatBarWidth = 20
	heatBarRight = 70
)

// HeatmapAnimation draws a year by month grid of mean temperature. Frame i
// fills rows up to year i; missing cells are grey. The colour scale is
// fixed over the whole dataset.
func (r *Renderer) HeatmapAnimation(ds *Dataset, w io.Writer) error {
	if len(ds.Mean) == 0 {
		return errors.New("heatmap animation: no data to plot")
	}
	pivot := calculator.PivotMean(ds.Mean)
	low, high, err := calculator.Range(pivot.Values())
	if err != nil {
		return fmt.Errorf("heatmap animation: %w", err)
	}

	frames := make([][]byte, 0, len(pivot.Years))
	for i := range pivot.Years {
		frame, err := r.heatmapFrame(pivot, i, low, high)
		if err != nil {
			return fmt.Errorf("heatmap animation: %w", err)
		}
		frames = append(frames, frame)
	}
	return encodeAnimation(w, frames)
}

func (r *Renderer) heatmapFrame(p calculator.Pivot, upto int, low, high float64) ([]byte, error) {
	c, err := newCanvas(r.Width, r.Height)
	if err != nil {
		return nil, err
	}

	gridRight := r.Width - heatBarRight - heatBarWidth - heatBarGap
	gridBottom := r.Height - heatBottom
	cellW := float64(gridRight-heatLeft) / 12
	cellH := float64(gridBottom-heatTop) / float64(len(p.Years))

	text(c, fmt.Sprintf("%s monthly mean temperature, %d", r.Title, p.Years[upto]), r.Width/2, heatTop/2+6, 14)

	labelEvery := 1
	if cellH < 14 {
		labelEvery = int(math.Ceil(14 / cellH))
	}
	for row, year := range p.Years {
		y0 := heatTop + int(float64(row)*cellH)
		y1 := heatTop + int(float64(row+1)*cellH)
		if row <= upto {
			for m, v := range p.Cells[row] {
				x0 := heatLeft + int(float64(m)*cellW)
				x1 := heatLeft + int(float64(m+1)*cellW)
				col := colorMissing
				if !math.IsNaN(v) {
					col = hotColor(v, low, high)
				}
				fillRect(c, x0, y0, x1, y1, col)
			}
		}
		if row%labelEvery == 0 {
			textRight(c, strconv.Itoa(year), heatLeft-6, (y0+y1)/2+4, 10)
		}
	}
	strokeRect(c, heatLeft, heatTop, gridRight, gridBottom, colorBlack, 1)

	for m := 0; m < 12; m++ {
		x := heatLeft + int((float64(m)+0.5)*cellW)
		text(c, strconv.Itoa(m+1), x, gridBottom+16, 10)
	}
	text(c, "Month", (heatLeft+gridRight)/2, gridBottom+32, 11)

	drawColorBar(c, gridRight+heatBarGap, heatTop, gridBottom, low, high)

	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return nil, fmt.Errorf("save frame: %w", err)
	}
	return buf.Bytes(), nil
}

// drawColorBar paints a vertical scale, high at the top.
func drawColorBar(c chart.Renderer, x, top, bottom int, low, high float64) {
	const steps = 100
	span := float64(bottom - top)
	for i := 0; i < steps; i++ {
		y0 := top + int(float64(i)*span/steps)
		y1 := top + int(float64(i+1)*span/steps)
		v := high - (high-low)*(float64(i)+0.5)/steps
		fillRect(c, x, y0, x+heatBarWidth, y1, hotColor(v, low, high))
	}
	strokeRect(c, x, top, x+heatBarWidth, bottom, colorBlack, 1)

	for i := 0; i <= 4; i++ {
		v := high - (high-low)*float64(i)/4
		y := top + int(span*float64(i)/4)
		line(c, x+heatBarWidth, y, x+heatBarWidth+4, y, colorBlack, 1)
		c.SetFontColor(colorBlack)
		c.SetFontSize(10)
		c.Text(fmt.Sprintf("%.1f", v), x+heatBarWidth+7, y+4)
	}
	text(c, "°C", x+heatBarWidth/2, top-8, 10)
}
