// Package store persists a temperature series as a flat CSV file.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"TempHarvest/internal/model"
)

// Layout selects the column set of the file.
type Layout string

const (
	// LayoutMaxMin writes Date,MaxTemp,MinTemp.
	LayoutMaxMin Layout = "max_min"
	// LayoutSingle writes Date,Temp using the high reading.
	LayoutSingle Layout = "single"
)

// Header returns the header row for l.
func (l Layout) Header() ([]string, error) {
	switch l {
	case LayoutMaxMin:
		return []string{"Date", "MaxTemp", "MinTemp"}, nil
	case LayoutSingle:
		return []string{"Date", "Temp"}, nil
	default:
		return nil, fmt.Errorf("unknown csv layout %q", l)
	}
}

// WriteCSV writes records to path, creating parent directories. The file
// is written to a temporary sibling and renamed over path, so an existing
// file is only replaced by a complete one.
func WriteCSV(path string, records []model.TemperatureRecord, layout Layout) error {
	header, err := layout.Header()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	tmp := f.Name()
	if err := writeRows(f, header, records, layout); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close csv: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace csv: %w", err)
	}
	return nil
}

func writeRows(out io.Writer, header []string, records []model.TemperatureRecord, layout Layout) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Date, r.High, r.Low}
		if layout == LayoutSingle {
			row = row[:2]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Date, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV loads a file written by WriteCSV and reports its layout.
func ReadCSV(path string) ([]model.TemperatureRecord, Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, "", fmt.Errorf("csv %s is empty", path)
		}
		return nil, "", fmt.Errorf("read csv header: %w", err)
	}
	layout, err := detectLayout(header)
	if err != nil {
		return nil, "", err
	}

	var records []model.TemperatureRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("read csv row: %w", err)
		}
		rec := model.TemperatureRecord{}
		if len(row) > 0 {
			rec.Date = row[0]
		}
		if len(row) > 1 {
			rec.High = row[1]
		}
		if layout == LayoutMaxMin && len(row) > 2 {
			rec.Low = row[2]
		}
		records = append(records, rec)
	}
	return records, layout, nil
}

func detectLayout(header []string) (Layout, error) {
	if len(header) > 0 {
		// Spreadsheet tools may prepend a byte order mark.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	joined := strings.Join(header, ",")
	for _, l := range []Layout{LayoutMaxMin, LayoutSingle} {
		h, _ := l.Header()
		if joined == strings.Join(h, ",") {
			return l, nil
		}
	}
	return "", fmt.Errorf("unrecognised csv header %q", joined)
}
