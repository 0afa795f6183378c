package visualize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Renderer draws the chart set for one city.
type Renderer struct {
	Title  string
	Width  int
	Height int
	Log    *zap.Logger
}

// Outputs names the files RenderAll writes. Empty paths are skipped.
type Outputs struct {
	LineGIF    string
	HeatmapGIF string
	BoxplotPNG string
}

// NewRenderer creates a Renderer with a 1000x600 canvas.
func NewRenderer(title string, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{Title: title, Width: 1000, Height: 600, Log: log}
}

// RenderAll reads the CSV at csvPath and writes every configured chart.
// A failing chart does not prevent the others; all errors are returned
// joined.
func (r *Renderer) RenderAll(csvPath string, out Outputs) error {
	ds, err := LoadDataset(csvPath, r.Log)
	if err != nil {
		return err
	}
	if ds.Skipped > 0 {
		r.Log.Warn("rows skipped while loading dataset", zap.Int("skipped", ds.Skipped))
	}

	jobs := []struct {
		name string
		path string
		draw func(*Dataset, io.Writer) error
	}{
		{"line", out.LineGIF, r.LineAnimation},
		{"heatmap", out.HeatmapGIF, r.HeatmapAnimation},
		{"boxplot", out.BoxplotPNG, r.MonthlyBoxplot},
	}
	var errs []error
	for _, j := range jobs {
		if j.path == "" {
			continue
		}
		if err := writeChart(j.path, func(w io.Writer) error { return j.draw(ds, w) }); err != nil {
			r.Log.Error("chart failed", zap.String("chart", j.name), zap.String("path", j.path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		r.Log.Info("chart written", zap.String("chart", j.name), zap.String("path", j.path))
	}
	return errors.Join(errs...)
}

func writeChart(path string, draw func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := draw(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
