package dashboard

import (
	"fmt"
	"time"

	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/table"
)

// MaxSeriesPoints is the row count above which a series is resampled hourly.
const MaxSeriesPoints = 5000

// SeriesColumn is one plotted line.
type SeriesColumn struct {
	Name   string    `json:"name"`
	Unit   string    `json:"unit"`
	Values []float64 `json:"values"`
}

// Series holds chart data for one Studer field.
type Series struct {
	Field      string         `json:"field"`
	Resampled  bool           `json:"resampled"`
	Timestamps []time.Time    `json:"timestamps"`
	Columns    []SeriesColumn `json:"columns"`
}

// Series field names.
const (
	SeriesVoltage   = "voltage"
	SeriesFrequency = "frequency"
	SeriesStatus    = "status"
	SeriesImpex     = "impex"
	SeriesSOC       = "soc"
)

var seriesTypes = map[string][]model.FieldType{
	SeriesVoltage:   {model.FieldGridVoltageL1, model.FieldGridVoltageL2, model.FieldGridVoltageL3},
	SeriesFrequency: {model.FieldGridFrequencyL1, model.FieldGridFrequencyL2, model.FieldGridFrequencyL3},
	SeriesStatus:    {model.FieldGridStatusL1, model.FieldGridStatusL2, model.FieldGridStatusL3},
	SeriesImpex:     {model.FieldGridNetL1, model.FieldGridNetL2, model.FieldGridNetL3},
	SeriesSOC:       {model.FieldBatterySOC},
}

// Series returns the zero-filled chart data of a Studer field over the view.
// Views with more than MaxSeriesPoints rows are averaged per hour.
func (s *Service) Series(v View, field string) (Series, error) {
	types, ok := seriesTypes[field]
	if !ok {
		return Series{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	t, err := s.rows(model.DatasetStuder, v)
	if err != nil {
		return Series{}, err
	}

	out := Series{Field: field}
	if t.Len() > MaxSeriesPoints {
		t = t.ResampleHourly()
		out.Resampled = true
	}

	selected, err := s.selectSeries(t, field)
	if err != nil {
		return Series{}, err
	}

	out.Timestamps = selected.Index()
	for i, name := range selected.Columns() {
		vals, err := selected.Numeric(name)
		if err != nil {
			return Series{}, err
		}
		out.Columns = append(out.Columns, SeriesColumn{
			Name:   name,
			Unit:   model.FieldCatalog[types[i]].Unit,
			Values: vals,
		})
	}
	return out, nil
}

func (s *Service) selectSeries(t *table.Table, field string) (*table.Table, error) {
	sel := s.calc.Selector()
	switch field {
	case SeriesVoltage:
		return sel.GridInputVoltages(t)
	case SeriesFrequency:
		return sel.GridInputFrequencies(t)
	case SeriesStatus:
		return sel.GridStatus(t)
	case SeriesImpex:
		return sel.GridNetExportImport(t)
	default:
		soc, err := sel.BatterySOC(t)
		if err != nil {
			return nil, err
		}
		out := table.New(t.Index())
		if err := out.SetNumeric(sel.Columns.BatterySOC, soc); err != nil {
			return nil, err
		}
		return out, nil
	}
}
