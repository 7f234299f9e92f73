// Package pq evaluates power quality over fixed-size windows of consecutive
// readings.
package pq

import (
	"math"

	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/table"
)

// Evaluator counts windows whose mean reaches or crosses the configured
// limits. Windows are consecutive, non-overlapping blocks of WindowSize rows
// by position; a shorter trailing block is evaluated as well.
type Evaluator struct {
	Limits config.PQLimits
}

func NewEvaluator(limits config.PQLimits) *Evaluator {
	return &Evaluator{Limits: limits}
}

// PowerFrequencyVariation counts windows whose mean frequency is <= the
// minimum or >= the maximum. Windows without any reading are not counted.
func (e *Evaluator) PowerFrequencyVariation(t *table.Table, column string) (int, error) {
	vals, err := t.Numeric(column)
	if err != nil {
		return 0, err
	}
	return e.countOutside(vals, e.Limits.FrequencyMin, e.Limits.FrequencyMax), nil
}

// LongDurationVoltageVariation fills missing voltages with the column mean,
// then counts windows whose mean is <= the minimum or >= the maximum.
func (e *Evaluator) LongDurationVoltageVariation(t *table.Table, column string) (int, error) {
	vals, err := t.Numeric(column)
	if err != nil {
		return 0, err
	}
	fillMean(vals)
	return e.countOutside(vals, e.Limits.VoltageMin, e.Limits.VoltageMax), nil
}

func (e *Evaluator) countOutside(vals []float64, min, max float64) int {
	size := e.Limits.WindowSize
	if size <= 0 {
		size = 1
	}
	n := 0
	for _, m := range WindowMeans(vals, size) {
		if math.IsNaN(m) {
			continue
		}
		if m <= min || m >= max {
			n++
		}
	}
	return n
}

// WindowMeans returns the mean of present values for each block of size rows.
// A block with no present value yields NaN.
func WindowMeans(vals []float64, size int) []float64 {
	var means []float64
	for i := 0; i < len(vals); i += size {
		j := i + size
		if j > len(vals) {
			j = len(vals)
		}
		var sum float64
		var n int
		for _, v := range vals[i:j] {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			means = append(means, math.NaN())
			continue
		}
		means = append(means, sum/float64(n))
	}
	return means
}

// fillMean replaces NaN entries in place with the mean of the present ones.
// When nothing is present the slice is left as is.
func fillMean(vals []float64) {
	var sum float64
	var n int
	for _, v := range vals {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return
	}
	mean := sum / float64(n)
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = mean
		}
	}
}
