package weather

import (
	"math"
	"sort"
	"strconv"
)

// Bucket is one category of a distribution. Percentage is relative to the
// sum of all bucket counts.
type Bucket struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// band is a half-open range [lo, hi). closed makes hi inclusive.
type band struct {
	label  string
	lo, hi float64
	closed bool
}

func (b band) contains(v float64) bool {
	if v < b.lo {
		return false
	}
	if b.closed {
		return v <= b.hi
	}
	return v < b.hi
}

var cloudBands = []band{
	{label: "Clear Sky (0-10%)", lo: 0, hi: 10},
	{label: "Few Clouds (10-25%)", lo: 10, hi: 25},
	{label: "Scattered Clouds (25-50%)", lo: 25, hi: 50},
	{label: "Broken Clouds (50-90%)", lo: 50, hi: 90},
	{label: "Overcast (90-100%)", lo: 90, hi: 100, closed: true},
}

var visibilityBands = []band{
	{label: "Very Poor (<1000m)", lo: math.Inf(-1), hi: 1000},
	{label: "Poor (1000-4000m)", lo: 1000, hi: 4000},
	{label: "Moderate (4000-10000m)", lo: 4000, hi: 10000},
	{label: "Good (10000-20000m)", lo: 10000, hi: 20000},
	{label: "Excellent (>20000m)", lo: 20000, hi: math.Inf(1), closed: true},
}

var dewPointBands = []band{
	{label: "Very comfortable (<10°C)", lo: math.Inf(-1), hi: 10},
	{label: "Comfortable (10-16°C)", lo: 10, hi: 16},
	{label: "Moderately comfortable (16-18°C)", lo: 16, hi: 18},
	{label: "Slightly uncomfortable (18-21°C)", lo: 18, hi: 21},
	{label: "Uncomfortable (21-24°C)", lo: 21, hi: 24},
	{label: "Very uncomfortable (>24°C)", lo: 24, hi: math.Inf(1), closed: true},
}

// CloudCategories buckets cloud cover percentages.
func CloudCategories(values []float64) []Bucket {
	return bucketize(values, cloudBands)
}

// VisibilityCategories buckets visibility distances in meters.
func VisibilityCategories(values []float64) []Bucket {
	return bucketize(values, visibilityBands)
}

// DewPointComfort buckets dew points in °C by comfort level.
func DewPointComfort(values []float64) []Bucket {
	return bucketize(values, dewPointBands)
}

func bucketize(values []float64, bands []band) []Bucket {
	out := make([]Bucket, len(bands))
	for i, b := range bands {
		out[i].Label = b.label
	}
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		for i, b := range bands {
			if b.contains(v) {
				out[i].Count++
				break
			}
		}
	}
	fillPercentages(out)
	return out
}

// ConditionCounts counts occurrences of each non-empty value, most frequent
// first; ties are ordered by label.
func ConditionCounts(values []string) []Bucket {
	counts := make(map[string]int)
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}
	out := make([]Bucket, 0, len(counts))
	for label, n := range counts {
		out = append(out, Bucket{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	fillPercentages(out)
	return out
}

var weatherGroups = map[byte]string{
	'2': "Thunderstorm",
	'3': "Drizzle",
	'5': "Rain",
	'6': "Snow",
	'7': "Atmosphere",
	'8': "Clear/Clouds",
	'9': "Extreme",
}

// WeatherGroup maps an OpenWeather condition id to its group by the id's
// first digit. Unknown or missing ids are "Other".
func WeatherGroup(id float64) string {
	if math.IsNaN(id) || math.IsInf(id, 0) {
		return "Other"
	}
	s := strconv.FormatInt(int64(id), 10)
	if g, ok := weatherGroups[s[0]]; ok {
		return g
	}
	return "Other"
}

// WeatherIDCategories counts condition ids by group.
func WeatherIDCategories(ids []float64) []Bucket {
	groups := make([]string, len(ids))
	for i, id := range ids {
		groups[i] = WeatherGroup(id)
	}
	return ConditionCounts(groups)
}

func fillPercentages(buckets []Bucket) {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total == 0 {
		return
	}
	for i := range buckets {
		buckets[i].Percentage = float64(buckets[i].Count) / float64(total) * 100
	}
}
