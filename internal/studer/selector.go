// Package studer projects the Studer inverter fields used by the grid metrics
// out of a record table.
package studer

import (
	"math"
	"strconv"
	"strings"

	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/table"
)

// Selector extracts logical fields by their configured column names.
// Every selection replaces missing values with zero.
type Selector struct {
	Columns config.Columns
}

func NewSelector(cols config.Columns) *Selector {
	return &Selector{Columns: cols}
}

// GridInputVoltages returns the L1-L3 grid input voltages.
func (s *Selector) GridInputVoltages(t *table.Table) (*table.Table, error) {
	return selectPhases(t, s.Columns.GridVoltage)
}

// GridInputFrequencies returns the L1-L3 grid input frequencies.
func (s *Selector) GridInputFrequencies(t *table.Table) (*table.Table, error) {
	return selectPhases(t, s.Columns.GridFrequency)
}

// GridStatus returns the L1-L3 grid connection status.
func (s *Selector) GridStatus(t *table.Table) (*table.Table, error) {
	return selectPhases(t, s.Columns.GridStatus)
}

// GridNetExportImport returns the L1-L3 net energy exchange with the grid.
// Negative values are exports.
func (s *Selector) GridNetExportImport(t *table.Table) (*table.Table, error) {
	return selectPhases(t, s.Columns.GridNetExchange)
}

func (s *Selector) BatterySOC(t *table.Table) ([]float64, error) {
	return selectColumn(t, s.Columns.BatterySOC)
}

func (s *Selector) BatteryInternalTemperature(t *table.Table) ([]float64, error) {
	return selectColumn(t, s.Columns.BatteryTemperature)
}

func selectPhases(t *table.Table, p config.Phase) (*table.Table, error) {
	out := table.New(t.Index())
	for _, name := range p.Names() {
		col, err := selectColumn(t, name)
		if err != nil {
			return nil, err
		}
		if err := out.SetNumeric(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func selectColumn(t *table.Table, name string) ([]float64, error) {
	if t.Has(name) && !t.IsNumeric(name) {
		return coerceText(t, name)
	}
	col, err := t.Numeric(name)
	if err != nil {
		return nil, err
	}
	for i, v := range col {
		if math.IsNaN(v) {
			col[i] = 0
		}
	}
	return col, nil
}

// coerceText parses a text column as numbers; unparseable cells become zero.
func coerceText(t *table.Table, name string) ([]float64, error) {
	raw, err := t.Text(name)
	if err != nil {
		return nil, err
	}
	col := make([]float64, len(raw))
	for i, v := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) {
			continue
		}
		col[i] = f
	}
	return col, nil
}
