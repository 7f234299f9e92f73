// Package dashboard assembles the dashboard sections for an explicit view of
// the loaded data.
package dashboard

import (
	"fmt"
	"time"

	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/table"
)

// View is what a dashboard page is looking at: one dataset, restricted to
// [Start, End). A zero Start or End leaves that side open.
type View struct {
	Dataset model.Dataset
	Start   time.Time
	End     time.Time
}

// ViewFromDates builds a view covering whole calendar days from start through
// end, both given as YYYY-MM-DD. Empty dates leave that side open.
func ViewFromDates(dataset model.Dataset, start, end string) (View, error) {
	v := View{Dataset: dataset}
	if start != "" {
		t, err := time.Parse(table.DateLayout, start)
		if err != nil {
			return View{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		v.Start = t
	}
	if end != "" {
		t, err := time.Parse(table.DateLayout, end)
		if err != nil {
			return View{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		v.End = t.AddDate(0, 0, 1)
	}
	if !v.Start.IsZero() && !v.End.IsZero() && !v.Start.Before(v.End) {
		return View{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return v, nil
}

// Range returns the view bounds.
func (v View) Range() model.TimeRange {
	return model.TimeRange{Start: v.Start, End: v.End}
}
