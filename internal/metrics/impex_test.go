package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainability_dashboard/internal/table"
)

func impexTable(t *testing.T, l1, l2, l3 []float64) *table.Table {
	t.Helper()
	tbl := table.New(hours(day1, len(l1)))
	require.NoError(t, tbl.SetNumeric(cols.GridNetExchange.L1, l1))
	require.NoError(t, tbl.SetNumeric(cols.GridNetExchange.L2, l2))
	require.NoError(t, tbl.SetNumeric(cols.GridNetExchange.L3, l3))
	return tbl
}

func TestCalculator_ImportExportTotals(t *testing.T) {
	// phase sums -100, 50, -30
	tbl := impexTable(t,
		[]float64{-60, -40},
		[]float64{20, 30},
		[]float64{-30, nan},
	)
	got, err := newCalc().ImportExportTotals(tbl)
	require.NoError(t, err)
	assert.InDelta(t, -100, got.L1, 1e-9)
	assert.InDelta(t, 50, got.L2, 1e-9)
	assert.InDelta(t, -30, got.L3, 1e-9)
	assert.InDelta(t, -130, got.TotalExport, 1e-9)
}

func TestCalculator_ImportExportTotalsNoExport(t *testing.T) {
	tbl := impexTable(t, []float64{1}, []float64{2}, []float64{3})
	got, err := newCalc().ImportExportTotals(tbl)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalExport)
}

func TestCalculator_ImportExportEfficiency(t *testing.T) {
	tbl := impexTable(t,
		[]float64{-5, 5, 0, -1},
		[]float64{0, 0, 0, 2},
		[]float64{0, 0, 0, 0},
	)
	got, err := newCalc().ImportExportEfficiency(tbl)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ExportInstances)
	assert.Equal(t, 2, got.ImportInstances)
	assert.InDelta(t, 0.5, got.Efficiency, 1e-9)
}

func TestCalculator_ImportExportStats(t *testing.T) {
	tbl := impexTable(t, []float64{-1, 1}, []float64{2, 2}, []float64{nan, 4})
	stats, err := newCalc().ImportExportStats(tbl)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.InDelta(t, 0, stats[0].Sum, 1e-9)
	assert.InDelta(t, 0, stats[1].StdDev, 1e-9)
	// zero-filled by the selector
	assert.Equal(t, 2, stats[2].Count)
	assert.InDelta(t, 2, stats[2].Mean, 1e-9)
}
