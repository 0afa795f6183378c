package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTemperature reads a reading such as "15", "-3.5", "28℃" or "28°C"
// and returns degrees Celsius. Fahrenheit readings ("82°F", "82℉") are
// converted.
func ParseTemperature(text string) (float64, error) {
	s := strings.TrimSpace(text)
	fahrenheit := false
	for _, u := range temperatureUnits {
		if strings.HasSuffix(s, u.Suffix) {
			s = strings.TrimSuffix(s, u.Suffix)
			fahrenheit = u.Fahrenheit
			break
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty temperature %q", text)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid temperature %q", text)
	}
	if fahrenheit {
		v = (v - 32) * 5 / 9
	}
	return v, nil
}

// temperatureUnits lists recognised suffixes, longest first.
var temperatureUnits = []struct {
	Suffix     string
	Fahrenheit bool
}{
	{"°C", false},
	{"°F", true},
	{"℃", false},
	{"℉", true},
	{"°", false},
	{"C", false},
}

// Mean averages the non-NaN values.
func Mean(values []float64) (float64, error) {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, errors.New("not enough data for mean")
	}
	return sum / float64(n), nil
}
