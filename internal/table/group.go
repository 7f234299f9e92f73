package table

import (
	"math"
	"sort"
	"time"
)

// DateLayout is the key format of a calendar day.
const DateLayout = "2006-01-02"

// DayGroup holds the row positions that fall on one calendar date.
type DayGroup struct {
	Date string
	Rows []int
}

// DayGroups groups row positions by the calendar date of their timestamp,
// ordered by date. Rows keep their table order within a group.
func (t *Table) DayGroups() []DayGroup {
	pos := make(map[string]int)
	var groups []DayGroup
	for i, ts := range t.index {
		key := ts.Format(DateLayout)
		g, ok := pos[key]
		if !ok {
			g = len(groups)
			pos[key] = g
			groups = append(groups, DayGroup{Date: key})
		}
		groups[g].Rows = append(groups[g].Rows, i)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Date < groups[b].Date
	})
	return groups
}

// HourGroups groups row positions by hour of day (0-23).
func (t *Table) HourGroups() [24][]int {
	var groups [24][]int
	for i, ts := range t.index {
		h := ts.Hour()
		groups[h] = append(groups[h], i)
	}
	return groups
}

// ResampleHourly buckets rows into consecutive hours from the first to the
// last timestamp. Numeric columns take the mean of present values (NaN for an
// empty hour); text columns carry the last value seen up to the end of the
// hour. The table must be sorted.
func (t *Table) ResampleHourly() *Table {
	if len(t.index) == 0 {
		return New(nil)
	}

	first := t.index[0].Truncate(time.Hour)
	last := t.index[len(t.index)-1].Truncate(time.Hour)
	n := int(last.Sub(first)/time.Hour) + 1

	idx := make([]time.Time, n)
	for i := range idx {
		idx[i] = first.Add(time.Duration(i) * time.Hour)
	}

	buckets := make([][]int, n)
	for r, ts := range t.index {
		b := int(ts.Sub(first) / time.Hour)
		buckets[b] = append(buckets[b], r)
	}

	out := New(idx)
	for _, name := range t.order {
		if col, ok := t.numeric[name]; ok {
			vals := make([]float64, n)
			for b, rows := range buckets {
				if len(rows) == 0 {
					vals[b] = math.NaN()
					continue
				}
				vals[b] = meanOf(col, rows)
			}
			out.SetNumeric(name, vals)
		} else {
			col := t.text[name]
			vals := make([]string, n)
			var carry string
			for b, rows := range buckets {
				for _, r := range rows {
					if col[r] != "" {
						carry = col[r]
					}
				}
				vals[b] = carry
			}
			out.SetText(name, vals)
		}
	}
	return out
}
