package weather

import "sustainability_dashboard/internal/table"

// OpenWeather column names.
const (
	ColTemp        = "temp"
	ColFeelsLike   = "feels_like"
	ColTempMin     = "temp_min"
	ColTempMax     = "temp_max"
	ColVisibility  = "visibility"
	ColDewPoint    = "dew_point"
	ColPressure    = "pressure"
	ColHumidity    = "humidity"
	ColWindSpeed   = "wind_speed"
	ColClouds      = "clouds_all"
	ColWeatherID   = "weather_id"
	ColMain        = "weather_main"
	ColDescription = "weather_description"
)

// topDescriptions caps the detailed description list.
const topDescriptions = 10

// DayConditions counts the weather_main values observed on one date.
type DayConditions struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

// Report holds the weather sections. A section whose column is absent is
// left nil.
type Report struct {
	Rows int `json:"rows"`

	Temperature *Summary `json:"temperature,omitempty"`
	FeelsLike   *Summary `json:"feels_like,omitempty"`
	TempMin     *Summary `json:"temp_min,omitempty"`
	TempMax     *Summary `json:"temp_max,omitempty"`

	Visibility           *Summary `json:"visibility,omitempty"`
	VisibilityCategories []Bucket `json:"visibility_categories,omitempty"`

	DewPoint        *Summary `json:"dew_point,omitempty"`
	DewPointComfort []Bucket `json:"dew_point_comfort,omitempty"`
	Humidity        *Summary `json:"humidity,omitempty"`
	Pressure        *Summary `json:"pressure,omitempty"`
	WindSpeed       *Summary `json:"wind_speed,omitempty"`

	Clouds          *Summary `json:"clouds,omitempty"`
	CloudCategories []Bucket `json:"cloud_categories,omitempty"`

	Conditions        []Bucket        `json:"conditions,omitempty"`
	DailyConditions   []DayConditions `json:"daily_conditions,omitempty"`
	Descriptions      []Bucket        `json:"descriptions,omitempty"`
	WeatherCategories []Bucket        `json:"weather_categories,omitempty"`
}

// Analyze computes every weather section over t. Numeric columns are time
// interpolated before they are summarized.
func Analyze(t *table.Table) Report {
	r := Report{Rows: t.Len()}
	index := t.Index()

	filled := func(name string) ([]float64, bool) {
		vals, err := t.Numeric(name)
		if err != nil {
			return nil, false
		}
		return InterpolateTime(index, vals), true
	}
	summary := func(name string) *Summary {
		vals, ok := filled(name)
		if !ok {
			return nil
		}
		s := Describe(vals)
		return &s
	}

	r.Temperature = summary(ColTemp)
	r.FeelsLike = summary(ColFeelsLike)
	r.TempMin = summary(ColTempMin)
	r.TempMax = summary(ColTempMax)
	r.Humidity = summary(ColHumidity)
	r.Pressure = summary(ColPressure)
	r.WindSpeed = summary(ColWindSpeed)

	if vals, ok := filled(ColVisibility); ok {
		s := Describe(vals)
		r.Visibility = &s
		r.VisibilityCategories = VisibilityCategories(vals)
	}
	if vals, ok := filled(ColDewPoint); ok {
		s := Describe(vals)
		r.DewPoint = &s
		r.DewPointComfort = DewPointComfort(vals)
	}
	if vals, ok := filled(ColClouds); ok {
		s := Describe(vals)
		r.Clouds = &s
		r.CloudCategories = CloudCategories(vals)
	}
	if ids, ok := filled(ColWeatherID); ok {
		r.WeatherCategories = WeatherIDCategories(ids)
	}

	if main, err := t.Text(ColMain); err == nil {
		r.Conditions = ConditionCounts(main)
		r.DailyConditions = dailyConditions(t, main)
	}
	if desc, err := t.Text(ColDescription); err == nil {
		r.Descriptions = ConditionCounts(desc)
		if len(r.Descriptions) > topDescriptions {
			r.Descriptions = r.Descriptions[:topDescriptions]
		}
	}
	return r
}

func dailyConditions(t *table.Table, main []string) []DayConditions {
	groups := t.DayGroups()
	out := make([]DayConditions, 0, len(groups))
	for _, g := range groups {
		d := DayConditions{Date: g.Date, Counts: make(map[string]int)}
		for _, r := range g.Rows {
			if main[r] != "" {
				d.Counts[main[r]]++
			}
		}
		out = append(out, d)
	}
	return out
}
