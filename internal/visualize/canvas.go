package visualize

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// frameDelay is one second, in 1/100 s units.
const frameDelay = 100

// newCanvas returns a white PNG renderer with the default font set.
func newCanvas(width, height int) (chart.Renderer, error) {
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)
	fillRect(r, 0, 0, width, height, colorWhite)
	return r, nil
}

func fillRect(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}

func strokeRect(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color, width float64) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Stroke()
}

func line(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color, width float64) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// text draws body horizontally centred on x with its baseline at y.
func text(r chart.Renderer, body string, x, y int, size float64) {
	r.SetFontColor(colorBlack)
	r.SetFontSize(size)
	w := r.MeasureText(body).Width()
	r.Text(body, x-w/2, y)
}

// textRight draws body ending at x.
func textRight(r chart.Renderer, body string, x, y int, size float64) {
	r.SetFontColor(colorBlack)
	r.SetFontSize(size)
	w := r.MeasureText(body).Width()
	r.Text(body, x-w, y)
}

// encodeAnimation converts PNG frames into a GIF that plays once.
func encodeAnimation(w io.Writer, frames [][]byte) error {
	anim := &gif.GIF{LoopCount: -1}
	for i, f := range frames {
		img, err := png.Decode(bytes.NewReader(f))
		if err != nil {
			return fmt.Errorf("decode frame %d: %w", i, err)
		}
		bounds := img.Bounds()
		pal := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, bounds, img, bounds.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, frameDelay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}
