// Package weather computes the OpenWeather sections of the dashboard.
package weather

import (
	"math"
	"sort"
	"time"
)

// Summary is the descriptive summary of one weather column. Percentiles are
// linearly interpolated between the closest ranks.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	Max   float64 `json:"max"`
}

// Describe summarizes the present values. An empty input gives a zero
// Summary and a single value a zero Std.
func Describe(values []float64) Summary {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return Summary{}
	}
	sort.Float64s(present)

	var sum float64
	for _, v := range present {
		sum += v
	}
	n := len(present)
	s := Summary{
		Count: n,
		Mean:  sum / float64(n),
		Min:   present[0],
		P25:   percentile(present, 0.25),
		P50:   percentile(present, 0.50),
		P75:   percentile(present, 0.75),
		Max:   present[n-1],
	}
	if n > 1 {
		var sq float64
		for _, v := range present {
			d := v - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(n-1))
	}
	return s
}

// percentile expects sorted, non-empty input.
func percentile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// InterpolateTime fills interior gaps by interpolating linearly in time
// between the surrounding readings. Gaps after the last reading carry that
// reading forward; gaps before the first reading stay missing. The input is
// not modified.
func InterpolateTime(index []time.Time, values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	prev := -1
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			span := index[i].Sub(index[prev]).Seconds()
			for k := prev + 1; k < i; k++ {
				if span == 0 {
					out[k] = out[prev]
					continue
				}
				frac := index[k].Sub(index[prev]).Seconds() / span
				out[k] = out[prev] + (v-out[prev])*frac
			}
		}
		prev = i
	}
	if prev >= 0 {
		for k := prev + 1; k < len(out); k++ {
			out[k] = out[prev]
		}
	}
	return out
}
