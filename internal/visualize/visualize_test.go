package visualize

import (
	"bytes"
	"fmt"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"TempHarvest/internal/model"
	"TempHarvest/internal/store"
)

// twoYears returns one reading on the 1st and 15th of every month of 2021
// and January to June 2022.
func twoYears() []model.TemperatureRecord {
	var out []model.TemperatureRecord
	for y := 2021; y <= 2022; y++ {
		last := 12
		if y == 2022 {
			last = 6
		}
		for m := 1; m <= last; m++ {
			for _, d := range []int{1, 15} {
				high := 10 + m + d%7
				out = append(out, model.TemperatureRecord{
					Date: fmt.Sprintf("%04d-%02d-%02d", y, m, d),
					High: fmt.Sprintf("%d℃", high),
					Low:  fmt.Sprintf("%d℃", high-8),
				})
			}
		}
	}
	return out
}

func smallRenderer() *Renderer {
	r := NewRenderer("foshan", nil)
	r.Width, r.Height = 400, 300
	return r
}

func TestNewDataset(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	records := []model.TemperatureRecord{
		{Date: "2024-01-01", High: "15", Low: "7"},
		{Date: "bogus", High: "15", Low: "7"},
		{Date: "2024-01-02", High: "n/a", Low: "7"},
		{Date: "2024-01-03", High: "16°C", Low: ""},
	}
	ds := NewDataset(records, store.LayoutMaxMin, zap.New(core))

	require.Len(t, ds.High, 2)
	assert.Equal(t, 2024, ds.High[0].Year)
	assert.Equal(t, 1, ds.High[0].Month)
	assert.Equal(t, 16.0, ds.High[1].Value)
	require.Len(t, ds.Mean, 1)
	assert.InDelta(t, 11.0, ds.Mean[0].Value, 1e-9)
	assert.Equal(t, 2, ds.Skipped)
	assert.Equal(t, 2, logs.FilterMessageSnippet("skipping row").Len())
}

func TestNewDataset_SingleLayoutUsesTemp(t *testing.T) {
	ds := NewDataset([]model.TemperatureRecord{{Date: "2024-05-01", High: "30"}}, store.LayoutSingle, nil)
	require.Len(t, ds.Mean, 1)
	assert.Equal(t, 30.0, ds.Mean[0].Value)
}

func TestLineAnimation_FramePerYear(t *testing.T) {
	ds := NewDataset(twoYears(), store.LayoutMaxMin, nil)
	var buf bytes.Buffer
	require.NoError(t, smallRenderer().LineAnimation(ds, &buf))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 2)
	assert.Equal(t, []int{100, 100}, anim.Delay)
	assert.Equal(t, -1, anim.LoopCount)
}

func TestHeatmapAnimation_FramePerYear(t *testing.T) {
	ds := NewDataset(twoYears(), store.LayoutMaxMin, nil)
	var buf bytes.Buffer
	require.NoError(t, smallRenderer().HeatmapAnimation(ds, &buf))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, 2)
	assert.Equal(t, 400, anim.Image[0].Bounds().Dx())
	assert.Equal(t, 300, anim.Image[0].Bounds().Dy())
}

func TestHeatmapAnimation_SingleValue(t *testing.T) {
	ds := NewDataset([]model.TemperatureRecord{{Date: "2023-07-04", High: "30", Low: "20"}}, store.LayoutMaxMin, nil)
	var buf bytes.Buffer
	require.NoError(t, smallRenderer().HeatmapAnimation(ds, &buf))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 1)
}

func TestMonthlyBoxplot(t *testing.T) {
	ds := NewDataset(twoYears(), store.LayoutMaxMin, nil)
	var buf bytes.Buffer
	require.NoError(t, smallRenderer().MonthlyBoxplot(ds, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestCharts_EmptyDataset(t *testing.T) {
	ds := NewDataset(nil, store.LayoutMaxMin, nil)
	r := smallRenderer()
	var buf bytes.Buffer
	assert.Error(t, r.LineAnimation(ds, &buf))
	assert.Error(t, r.HeatmapAnimation(ds, &buf))
	assert.Error(t, r.MonthlyBoxplot(ds, &buf))
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "temps.csv")
	require.NoError(t, store.WriteCSV(csvPath, twoYears(), store.LayoutMaxMin))

	out := Outputs{
		LineGIF:    filepath.Join(dir, "charts", "line.gif"),
		HeatmapGIF: filepath.Join(dir, "charts", "heatmap.gif"),
	}
	require.NoError(t, smallRenderer().RenderAll(csvPath, out))

	for _, p := range []string{out.LineGIF, out.HeatmapGIF} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	_, err := os.Stat(filepath.Join(dir, "charts", "boxplot.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestHotColor(t *testing.T) {
	assert.Equal(t, colorWhite, hotColor(10, 0, 10))
	c := hotColor(0, 0, 10)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(0), c.B)
	mid := hotColor(5, 0, 10)
	assert.Equal(t, uint8(255), mid.R)
}

func TestAxisTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 5, 10, 15, 20, 25, 30}, axisTicks(0, 30, 6))
	assert.Equal(t, []float64{-2, 0, 2, 4}, axisTicks(-3, 4.5, 4))
}
