package ingest

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnphaseParser_Parse(t *testing.T) {
	input := `Date/Time,Energy Produced (Wh),Energy Consumed (Wh),Exported to Grid (Wh),Imported from Grid (Wh)
01/05/2023 10:00,120,80,40,0
01/05/2023 10:15,150,,60,0
1/5/2023 10:30,90,100,0,10`

	tbl, err := NewEnphaseParser(cols.EnphaseTimestamp).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	assert.Equal(t, time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC), tbl.Time(0))
	assert.Equal(t, time.Date(2023, 1, 5, 10, 30, 0, 0, time.UTC), tbl.Time(2))
	assert.Equal(t, cols.EnphaseEnergy, tbl.Columns())

	consumed, err := tbl.Numeric("Energy Consumed (Wh)")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(consumed[1]))
	assert.Equal(t, 100.0, consumed[2])
}

func TestEnphaseParser_MonthFirst(t *testing.T) {
	input := "Date/Time,Energy Produced (Wh)\n02/13/2024 00:15,5\n"
	tbl, err := NewEnphaseParser(cols.EnphaseTimestamp).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 13, 0, 15, 0, 0, time.UTC), tbl.Time(0))
}

func TestEnphaseParser_InvalidHeader(t *testing.T) {
	input := "Date,Energy Produced (Wh)\n01/05/2023 10:00,120\n"
	_, err := NewEnphaseParser(cols.EnphaseTimestamp).Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date/Time")
}

func TestEnphaseParser_BadTimestamp(t *testing.T) {
	input := "Date/Time,Energy Produced (Wh)\n2023-01-05 10:00,120\n"
	_, err := NewEnphaseParser(cols.EnphaseTimestamp).Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestEnphaseParser_EmptyInput(t *testing.T) {
	_, err := NewEnphaseParser(cols.EnphaseTimestamp).Parse(strings.NewReader(""))
	assert.Error(t, err)
}
