// Package visualize renders charts from a persisted temperature CSV.
package visualize

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"TempHarvest/internal/calculator"
	"TempHarvest/internal/model"
	"TempHarvest/internal/store"
)

// Dataset is the numeric view of a temperature file.
type Dataset struct {
	Layout store.Layout
	// High holds MaxTemp (or Temp for the single layout) per day.
	High []calculator.Point
	// Mean holds (MaxTemp+MinTemp)/2 per day, or Temp for the single layout.
	Mean    []calculator.Point
	Skipped int
}

// LoadDataset reads the CSV at path.
func LoadDataset(path string, log *zap.Logger) (*Dataset, error) {
	records, layout, err := store.ReadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return NewDataset(records, layout, log), nil
}

// NewDataset converts records, skipping rows whose date or temperature
// cannot be parsed.
func NewDataset(records []model.TemperatureRecord, layout store.Layout, log *zap.Logger) *Dataset {
	if log == nil {
		log = zap.NewNop()
	}
	ds := &Dataset{Layout: layout}
	for _, r := range records {
		day, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			log.Warn("skipping row: bad date", zap.String("date", r.Date), zap.Error(err))
			ds.Skipped++
			continue
		}
		high, err := calculator.ParseTemperature(r.High)
		if err != nil {
			log.Warn("skipping row: bad temperature", zap.String("date", r.Date), zap.Error(err))
			ds.Skipped++
			continue
		}
		pt := calculator.Point{Year: day.Year(), Month: int(day.Month()), Value: high}
		ds.High = append(ds.High, pt)

		if layout == store.LayoutSingle {
			ds.Mean = append(ds.Mean, pt)
			continue
		}
		low, err := calculator.ParseTemperature(r.Low)
		if err != nil {
			log.Warn("row has no usable low reading", zap.String("date", r.Date), zap.Error(err))
			continue
		}
		pt.Value = (high + low) / 2
		ds.Mean = append(ds.Mean, pt)
	}
	return ds
}

// Empty reports whether there is nothing to plot.
func (d *Dataset) Empty() bool { return len(d.High) == 0 }
