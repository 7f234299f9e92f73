// Package metrics computes the grid, battery and import/export figures shown
// on the grid metrics dashboard.
package metrics

import (
	"math"

	"sustainability_dashboard/internal/table"
)

// ColumnStats holds the descriptive statistics of one column. Missing values
// are skipped; figures that are undefined for the present values are zero.
type ColumnStats struct {
	Column         string  `json:"column"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Mean           float64 `json:"mean"`
	StdDev         float64 `json:"std_dev"`
	Sum            float64 `json:"sum"`
	Count          int     `json:"count"`
	TotalInstances int     `json:"total_instances"`
}

// Stats computes ColumnStats for each named numeric column of t, in order.
func Stats(t *table.Table, cols []string) ([]ColumnStats, error) {
	out := make([]ColumnStats, 0, len(cols))
	for _, name := range cols {
		vals, err := t.Numeric(name)
		if err != nil {
			return nil, err
		}
		s := Summarize(vals)
		s.Column = name
		out = append(out, s)
	}
	return out, nil
}

// Summarize computes ColumnStats over values. StdDev is the sample standard
// deviation (n-1).
func Summarize(values []float64) ColumnStats {
	s := ColumnStats{TotalInstances: len(values)}

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		s.Count++
		s.Sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if s.Count == 0 {
		return s
	}

	s.Min, s.Max = min, max
	s.Mean = s.Sum / float64(s.Count)

	if s.Count > 1 {
		var sq float64
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			d := v - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(s.Count-1))
	}
	return s
}
