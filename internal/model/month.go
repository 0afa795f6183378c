package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies one fetch unit: a calendar month of a given year.
type MonthKey struct {
	Year  int
	Month int // 1 ~ 12
}

// ParseMonthKey accepts "2021-07" or "202107".
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	var ys, ms string
	switch {
	case len(s) == 7 && s[4] == '-':
		ys, ms = s[:4], s[5:]
	case len(s) == 6:
		ys, ms = s[:4], s[4:]
	default:
		return MonthKey{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	k := MonthKey{Year: y, Month: m}
	if !k.Valid() {
		return MonthKey{}, fmt.Errorf("invalid month %q: month out of range", s)
	}
	return k, nil
}

// CurrentMonth returns the MonthKey containing t.
func CurrentMonth(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

// Valid reports whether Month is within 1..12 and Year is positive.
func (k MonthKey) Valid() bool {
	return k.Year > 0 && k.Month >= 1 && k.Month <= 12
}

// Index is a monotonic ordinal: Year*12 + Month.
func (k MonthKey) Index() int {
	return k.Year*12 + k.Month
}

// Compare returns -1, 0 or +1 ordering by (Year, Month).
func (k MonthKey) Compare(o MonthKey) int {
	switch a, b := k.Index(), o.Index(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (k MonthKey) Before(o MonthKey) bool { return k.Compare(o) < 0 }
func (k MonthKey) After(o MonthKey) bool  { return k.Compare(o) > 0 }

// Next advances one calendar month, wrapping December into January of the next year.
func (k MonthKey) Next() MonthKey {
	if k.Month == 12 {
		return MonthKey{Year: k.Year + 1, Month: 1}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// DaysIn returns the number of days in the month.
func (k MonthKey) DaysIn() int {
	return time.Date(k.Year, time.Month(k.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// MonthsBetween counts the months of the inclusive range [start, end].
// Returns 0 when end precedes start.
func MonthsBetween(start, end MonthKey) int {
	n := end.Index() - start.Index() + 1
	if n < 0 {
		return 0
	}
	return n
}
