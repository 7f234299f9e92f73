package table

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_DayGroups(t *testing.T) {
	idx := []time.Time{
		time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 5, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	groups := New(idx).DayGroups()

	require.Len(t, groups, 2)
	assert.Equal(t, "2024-03-01", groups[0].Date)
	assert.Equal(t, []int{1, 3}, groups[0].Rows)
	assert.Equal(t, "2024-03-02", groups[1].Date)
	assert.Equal(t, []int{0, 2}, groups[1].Rows)
}

func TestTable_DayGroupsEmpty(t *testing.T) {
	assert.Empty(t, New(nil).DayGroups())
}

func TestTable_HourGroups(t *testing.T) {
	idx := []time.Time{
		time.Date(2024, 3, 1, 0, 15, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 13, 45, 0, 0, time.UTC),
	}
	groups := New(idx).HourGroups()
	assert.Equal(t, []int{0}, groups[0])
	assert.Equal(t, []int{1, 2}, groups[13])
	assert.Empty(t, groups[5])
}

func TestTable_ResampleHourly(t *testing.T) {
	idx := []time.Time{
		startTime,
		startTime.Add(15 * time.Minute),
		startTime.Add(30 * time.Minute),
		// 11:00 has no rows
		startTime.Add(2*hour + 10*time.Minute),
	}
	tbl := New(idx)
	require.NoError(t, tbl.SetNumeric("v", []float64{10, 20, math.NaN(), 50}))
	require.NoError(t, tbl.SetText("s", []string{"clear", "", "rain", "snow"}))

	r := tbl.ResampleHourly()
	require.Equal(t, 3, r.Len())
	assert.Equal(t, startTime, r.Time(0))
	assert.Equal(t, startTime.Add(2*hour), r.Time(2))

	v, _ := r.Numeric("v")
	assert.InDelta(t, 15, v[0], 0.001)
	assert.True(t, math.IsNaN(v[1]))
	assert.InDelta(t, 50, v[2], 0.001)

	s, _ := r.Text("s")
	assert.Equal(t, []string{"rain", "rain", "snow"}, s)
}

func TestTable_ResampleHourlyEmpty(t *testing.T) {
	assert.Equal(t, 0, New(nil).ResampleHourly().Len())
}
