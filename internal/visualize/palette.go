package visualize

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"TempHarvest/internal/calculator"
)

var (
	colorWhite   = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	colorBlack   = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	colorMissing = drawing.Color{R: 190, G: 190, B: 190, A: 255}
	colorGrid    = drawing.Color{R: 220, G: 220, B: 220, A: 255}
	colorBox     = drawing.Color{R: 160, G: 196, B: 232, A: 255}
	colorMedian  = drawing.Color{R: 230, G: 120, B: 20, A: 255}
)

// hotStops defines the black-red-yellow-white scale, lowest first.
var hotStops = []struct {
	Pos     float64
	R, G, B float64
}{
	{0.0, 0.0416, 0, 0},
	{0.365, 1, 0, 0},
	{0.746, 1, 1, 0},
	{1.0, 1, 1, 1},
}

// hotColor maps v within [low, high] onto hotStops.
func hotColor(v, low, high float64) drawing.Color {
	pos, err := calculator.Position(v, low, high)
	if err != nil {
		pos = 0
	}
	for i := 1; i < len(hotStops); i++ {
		a, b := hotStops[i-1], hotStops[i]
		if pos > b.Pos {
			continue
		}
		f := (pos - a.Pos) / (b.Pos - a.Pos)
		return drawing.Color{
			R: channel(a.R + (b.R-a.R)*f),
			G: channel(a.G + (b.G-a.G)*f),
			B: channel(a.B + (b.B-a.B)*f),
			A: 255,
		}
	}
	return colorWhite
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
