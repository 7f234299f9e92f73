package weather

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainability_dashboard/internal/table"
)

var (
	start = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	nan   = math.NaN()
)

func hourly(n int) []time.Time {
	idx := make([]time.Time, n)
	for i := range idx {
		idx[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return idx
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{4, 1, nan, 3, 2})
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(5.0/3), s.Std, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.InDelta(t, 1.75, s.P25, 1e-9)
	assert.InDelta(t, 2.5, s.P50, 1e-9)
	assert.InDelta(t, 3.25, s.P75, 1e-9)
	assert.Equal(t, 4.0, s.Max)
}

func TestDescribe_Degenerate(t *testing.T) {
	assert.Equal(t, Summary{}, Describe(nil))
	assert.Equal(t, Summary{}, Describe([]float64{nan}))

	s := Describe([]float64{7})
	assert.Equal(t, Summary{Count: 1, Mean: 7, Min: 7, P25: 7, P50: 7, P75: 7, Max: 7}, s)
}

func TestInterpolateTime(t *testing.T) {
	idx := []time.Time{
		start,
		start.Add(time.Hour),
		start.Add(2 * time.Hour),
		start.Add(5 * time.Hour), // uneven spacing
		start.Add(6 * time.Hour),
		start.Add(7 * time.Hour),
	}
	in := []float64{nan, 10, nan, 40, nan, nan}

	out := InterpolateTime(idx, in)
	assert.True(t, math.IsNaN(out[0]), "leading gap stays missing")
	assert.Equal(t, 10.0, out[1])
	assert.InDelta(t, 17.5, out[2], 1e-9) // one quarter of the way from 1h to 5h
	assert.Equal(t, 40.0, out[3])
	assert.Equal(t, 40.0, out[4])
	assert.Equal(t, 40.0, out[5])

	assert.True(t, math.IsNaN(in[2]), "input untouched")
}

func TestInterpolateTime_AllMissing(t *testing.T) {
	out := InterpolateTime(hourly(2), []float64{nan, nan})
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
}

func TestCloudCategories(t *testing.T) {
	b := CloudCategories([]float64{0, 9.9, 10, 25, 49, 50, 89, 90, 100, 101, -1, nan})
	require.Len(t, b, 5)
	counts := []int{b[0].Count, b[1].Count, b[2].Count, b[3].Count, b[4].Count}
	assert.Equal(t, []int{2, 1, 2, 2, 2}, counts)
	assert.Equal(t, "Overcast (90-100%)", b[4].Label)
	assert.InDelta(t, 100.0*2/9, b[0].Percentage, 1e-9)
}

func TestVisibilityCategories(t *testing.T) {
	b := VisibilityCategories([]float64{500, 1000, 3999, 4000, 10000, 20000, 25000})
	counts := []int{b[0].Count, b[1].Count, b[2].Count, b[3].Count, b[4].Count}
	assert.Equal(t, []int{1, 2, 1, 1, 2}, counts)
}

func TestDewPointComfort(t *testing.T) {
	b := DewPointComfort([]float64{5, 10, 16, 17.9, 18, 21, 24, 30})
	require.Len(t, b, 6)
	counts := make([]int, len(b))
	for i := range b {
		counts[i] = b[i].Count
	}
	assert.Equal(t, []int{1, 1, 2, 1, 1, 2}, counts)
}

func TestBuckets_Empty(t *testing.T) {
	for _, b := range DewPointComfort(nil) {
		assert.Equal(t, 0, b.Count)
		assert.Equal(t, 0.0, b.Percentage)
	}
}

func TestConditionCounts(t *testing.T) {
	got := ConditionCounts([]string{"Rain", "Clouds", "Clear", "Clouds", "", "Rain", "Clouds"})
	require.Len(t, got, 3)
	assert.Equal(t, Bucket{Label: "Clouds", Count: 3, Percentage: 50}, got[0])
	assert.Equal(t, "Rain", got[1].Label)
	assert.Equal(t, "Clear", got[2].Label)
}

func TestWeatherGroup(t *testing.T) {
	tests := []struct {
		id   float64
		want string
	}{
		{211, "Thunderstorm"},
		{301, "Drizzle"},
		{500, "Rain"},
		{600, "Snow"},
		{741, "Atmosphere"},
		{800, "Clear/Clouds"},
		{804, "Clear/Clouds"},
		{901, "Extreme"},
		{100, "Other"},
		{nan, "Other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeatherGroup(tt.id), "id %v", tt.id)
	}
}

func TestAnalyze(t *testing.T) {
	tbl := table.New(hourly(4))
	require.NoError(t, tbl.SetNumeric(ColTemp, []float64{280, nan, 284, 286}))
	require.NoError(t, tbl.SetNumeric(ColClouds, []float64{0, 20, 95, 100}))
	require.NoError(t, tbl.SetNumeric(ColWeatherID, []float64{800, 801, 500, 500}))
	require.NoError(t, tbl.SetText(ColMain, []string{"Clear", "Clouds", "Rain", "Rain"}))

	r := Analyze(tbl)
	assert.Equal(t, 4, r.Rows)

	require.NotNil(t, r.Temperature)
	assert.Equal(t, 4, r.Temperature.Count, "gap interpolated")
	assert.InDelta(t, 283.0, r.Temperature.Mean, 1e-9)

	require.NotNil(t, r.Clouds)
	assert.Equal(t, 2, r.CloudCategories[4].Count)

	require.Len(t, r.WeatherCategories, 2)
	assert.Equal(t, "Clear/Clouds", r.WeatherCategories[0].Label)

	require.Len(t, r.Conditions, 3)
	assert.Equal(t, "Rain", r.Conditions[0].Label)
	require.Len(t, r.DailyConditions, 1)
	assert.Equal(t, 2, r.DailyConditions[0].Counts["Rain"])

	// Absent columns leave sections empty
	assert.Nil(t, r.Visibility)
	assert.Nil(t, r.DewPointComfort)
	assert.Nil(t, r.Descriptions)
}
