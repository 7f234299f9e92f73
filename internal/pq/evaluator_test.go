package pq

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/table"
)

const col = "v"

func series(t *testing.T, vals ...float64) *table.Table {
	t.Helper()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	idx := make([]time.Time, len(vals))
	for i := range idx {
		idx[i] = start.Add(time.Duration(i) * time.Minute)
	}
	tbl := table.New(idx)
	require.NoError(t, tbl.SetNumeric(col, vals))
	return tbl
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestPowerFrequencyVariation(t *testing.T) {
	e := NewEvaluator(config.DefaultPQLimits())

	tests := []struct {
		name string
		vals []float64
		want int
	}{
		{"nominal", repeat(50, 10), 0},
		{"low", repeat(45, 10), 1},
		{"at lower bound", repeat(49, 10), 1},
		{"at upper bound", repeat(51, 10), 1},
		{"two windows one bad", append(repeat(50, 10), repeat(52, 10)...), 1},
		{"trailing partial window", append(repeat(50, 10), 55, 55, 55), 1},
		{"empty", nil, 0},
		{"all missing", repeat(math.NaN(), 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.PowerFrequencyVariation(series(t, tt.vals...), col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPowerFrequencyVariation_MeanOfPresent(t *testing.T) {
	vals := repeat(50, 10)
	vals[3] = math.NaN()
	got, err := NewEvaluator(config.DefaultPQLimits()).PowerFrequencyVariation(series(t, vals...), col)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestLongDurationVoltageVariation(t *testing.T) {
	e := NewEvaluator(config.DefaultPQLimits())

	got, err := e.LongDurationVoltageVariation(series(t, repeat(230, 20)...), col)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = e.LongDurationVoltageVariation(series(t, append(repeat(230, 10), repeat(260, 10)...)...), col)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestLongDurationVoltageVariation_MeanFill(t *testing.T) {
	// Second window is entirely missing and takes the column mean (200 V),
	// which is below the minimum.
	vals := append(repeat(200, 10), repeat(math.NaN(), 10)...)
	tbl := series(t, vals...)

	got, err := NewEvaluator(config.DefaultPQLimits()).LongDurationVoltageVariation(tbl, col)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// Input untouched
	raw, _ := tbl.Numeric(col)
	assert.True(t, math.IsNaN(raw[15]))
}

func TestEvaluator_MissingColumn(t *testing.T) {
	e := NewEvaluator(config.DefaultPQLimits())
	tbl := series(t, 1, 2)

	_, err := e.PowerFrequencyVariation(tbl, "absent")
	assert.ErrorIs(t, err, table.ErrMissingField)
	_, err = e.LongDurationVoltageVariation(tbl, "absent")
	assert.ErrorIs(t, err, table.ErrMissingField)
}

func TestWindowMeans(t *testing.T) {
	means := WindowMeans([]float64{1, 3, 5, math.NaN(), 10}, 2)
	require.Len(t, means, 3)
	assert.InDelta(t, 2, means[0], 1e-9)
	assert.InDelta(t, 5, means[1], 1e-9)
	assert.InDelta(t, 10, means[2], 1e-9)
}
