package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemperature(t *testing.T) {
	cases := map[string]float64{
		"15":     15,
		" -3.5 ": -3.5,
		"28℃":    28,
		"28°C":   28,
		"7°":     7,
		"82.4°F": 28,
		"32℉":    0,
	}
	for in, want := range cases {
		got, err := ParseTemperature(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}

	for _, bad := range []string{"", "℃", "°F", "hot", "NaN", "12/8", "5°C°C"} {
		_, err := ParseTemperature(bad)
		assert.Error(t, err, bad)
	}
}

func TestMean(t *testing.T) {
	m, err := Mean([]float64{1, 2, math.NaN(), 6})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, m, 1e-9)

	_, err = Mean([]float64{math.NaN()})
	assert.Error(t, err)
}

func TestRangeAndPosition(t *testing.T) {
	low, high, err := Range([]float64{5, math.NaN(), -2, 9})
	require.NoError(t, err)
	assert.Equal(t, -2.0, low)
	assert.Equal(t, 9.0, high)

	_, _, err = Range(nil)
	assert.Error(t, err)

	pos, err := Position(4, 0, 8)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pos, 1e-9)

	pos, _ = Position(20, 0, 8)
	assert.Equal(t, 1.0, pos)
	pos, _ = Position(3, 3, 3)
	assert.Equal(t, 0.5, pos)
	_, err = Position(1, 5, 2)
	assert.Error(t, err)
}

func TestPivotMean(t *testing.T) {
	p := PivotMean([]Point{
		{Year: 2021, Month: 1, Value: 10},
		{Year: 2021, Month: 1, Value: 20},
		{Year: 2020, Month: 12, Value: 5},
		{Year: 2021, Month: 13, Value: 99},
	})

	assert.Equal(t, []int{2020, 2021}, p.Years)
	row, ok := p.Row(2021)
	require.True(t, ok)
	assert.InDelta(t, 15.0, row[0], 1e-9)
	assert.True(t, math.IsNaN(row[1]))

	row, ok = p.Row(2020)
	require.True(t, ok)
	assert.InDelta(t, 5.0, row[11], 1e-9)

	_, ok = p.Row(1999)
	assert.False(t, ok)
	assert.ElementsMatch(t, []float64{5, 15}, p.Values())
}

func TestMonthlyPools(t *testing.T) {
	pools := MonthlyPools([]Point{
		{Year: 2020, Month: 3, Value: 1},
		{Year: 2021, Month: 3, Value: 2},
		{Year: 2021, Month: 4, Value: math.NaN()},
	})
	assert.Equal(t, []float64{1, 2}, pools[2])
	assert.Empty(t, pools[3])
}

func TestComputeBox(t *testing.T) {
	s, err := ComputeBox([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	require.NoError(t, err)

	assert.Equal(t, 9, s.N)
	assert.InDelta(t, 3.0, s.Q1, 1e-9)
	assert.InDelta(t, 5.0, s.Median, 1e-9)
	assert.InDelta(t, 7.0, s.Q3, 1e-9)
	assert.InDelta(t, 1.0, s.WhiskerLow, 1e-9)
	assert.InDelta(t, 8.0, s.WhiskerHigh, 1e-9)
	assert.Equal(t, []float64{100}, s.Outliers)
}

func TestComputeBox_Interpolates(t *testing.T) {
	s, err := ComputeBox([]float64{4, 1, 3, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.75, s.Q1, 1e-9)
	assert.InDelta(t, 2.5, s.Median, 1e-9)
	assert.InDelta(t, 3.25, s.Q3, 1e-9)
	assert.Empty(t, s.Outliers)

	_, err = ComputeBox(nil)
	assert.Error(t, err)
}
