package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawDayEntry is one day's unvalidated text as found on a month page.
type RawDayEntry struct {
	Day  string
	High string
	Low  string
}

// TemperatureRecord is a finalized row ready for persistence.
// High and Low carry the extracted text unchanged.
type TemperatureRecord struct {
	Date string
	High string
	Low  string
}

const dateLayout = "2006-01-02"

// DateFor rebuilds the calendar date of a day within this month.
//
// A one or two digit day of month is zero-padded and combined with the
// year and month. Text that already starts with a full YYYY-MM-DD date
// (table pages often print "2024-01-01 星期一") is passed through as that
// date. Anything else is rejected with ErrValidation.
func (k MonthKey) DateFor(dayText string) (string, error) {
	d := strings.TrimSpace(dayText)
	if len(d) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, d[:len(dateLayout)]); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	if len(d) == 0 || len(d) > 2 {
		return "", fmt.Errorf("%w: day %q is not a day of month", ErrValidation, dayText)
	}
	day, err := strconv.Atoi(d)
	if err != nil || d[0] == '-' || d[0] == '+' {
		return "", fmt.Errorf("%w: day %q is not numeric", ErrValidation, dayText)
	}
	if day < 1 || day > k.DaysIn() {
		return "", fmt.Errorf("%w: day %d outside %s", ErrValidation, day, k)
	}
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, day), nil
}

// Series is the outcome of one range build. Records are in calendar order;
// Failures lists every month (or day) that contributed nothing.
type Series struct {
	Visited  []MonthKey
	Records  []TemperatureRecord
	Failures []MonthFailure
}

// MonthFailure keeps enough context to re-run a single month by hand.
type MonthFailure struct {
	Month  MonthKey  `json:"-"`
	Key    string    `json:"month"`
	URL    string    `json:"url"`
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail"`
}

// NewMonthFailure classifies err and captures its message.
func NewMonthFailure(month MonthKey, url string, err error) MonthFailure {
	return MonthFailure{
		Month:  month,
		Key:    month.String(),
		URL:    url,
		Kind:   KindOf(err),
		Detail: err.Error(),
	}
}

// RunSummary describes one completed harvest run.
type RunSummary struct {
	ID         string         `json:"id"`
	City       string         `json:"city"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Months     int            `json:"months"`
	Records    int            `json:"records"`
	CSVPath    string         `json:"csv_path"`
	Failures   []MonthFailure `json:"failures"`
}
