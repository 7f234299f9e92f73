package dashboard

import (
	"sustainability_dashboard/internal/metrics"
	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/table"
)

type VoltageSection struct {
	LoadSheddingInstances        int                   `json:"load_shedding_instances"`
	LoadSheddingDays             metrics.DayCompliance `json:"load_shedding_days"`
	LongDurationVoltageVariation int                   `json:"long_duration_voltage_variation"`
	UptimePercentage             float64               `json:"uptime_percentage"`
	Stats                        []metrics.ColumnStats `json:"stats"`
}

type FrequencySection struct {
	WrongFrequencyInstances int                   `json:"wrong_frequency_instances"`
	WrongFrequencyDays      metrics.DayCompliance `json:"wrong_frequency_days"`
	PowerFrequencyVariation int                   `json:"power_frequency_variation"`
	Stats                   []metrics.ColumnStats `json:"stats"`
}

type GridConnectionSection struct {
	DisconnectedInstances int                   `json:"disconnected_instances"`
	DisconnectedDays      metrics.DayCompliance `json:"disconnected_days"`
}

type BatterySection struct {
	AverageSOC float64               `json:"average_soc"`
	DrainDays  metrics.DayCompliance `json:"drain_days"`
	Stats      []metrics.ColumnStats `json:"stats"`
}

type GridImpexSection struct {
	Totals     metrics.ImportExportTotals     `json:"totals"`
	Efficiency metrics.ImportExportEfficiency `json:"efficiency"`
	Stats      []metrics.ColumnStats          `json:"stats"`
}

// GridReport is the grid metrics page for one view of the Studer data.
type GridReport struct {
	Range          model.TimeRange       `json:"range"`
	Rows           int                   `json:"rows"`
	Voltage        VoltageSection        `json:"voltage"`
	Frequency      FrequencySection      `json:"frequency"`
	GridConnection GridConnectionSection `json:"grid_connection"`
	Battery        BatterySection        `json:"battery"`
	GridImpex      GridImpexSection      `json:"grid_impex"`
}

// GridReport computes every grid section over the Studer rows in view. The
// power-quality checks evaluate phase L1. The first missing column fails the
// whole report.
func (s *Service) GridReport(v View) (GridReport, error) {
	t, err := s.rows(model.DatasetStuder, v)
	if err != nil {
		return GridReport{}, err
	}

	r := GridReport{Rows: t.Len(), Range: v.Range()}
	if t.Len() > 0 {
		r.Range = model.TimeRange{Start: t.Time(0), End: t.Time(t.Len() - 1)}
	}

	if r.Voltage, err = s.voltageSection(t); err != nil {
		return GridReport{}, err
	}
	if r.Frequency, err = s.frequencySection(t); err != nil {
		return GridReport{}, err
	}
	if r.GridConnection, err = s.gridConnectionSection(t); err != nil {
		return GridReport{}, err
	}
	if r.Battery, err = s.batterySection(t); err != nil {
		return GridReport{}, err
	}
	if r.GridImpex, err = s.gridImpexSection(t); err != nil {
		return GridReport{}, err
	}
	return r, nil
}

func (s *Service) voltageSection(t *table.Table) (VoltageSection, error) {
	var sec VoltageSection
	var err error
	if sec.LoadSheddingInstances, err = s.calc.LoadSheddingInstances(t); err != nil {
		return sec, err
	}
	if sec.LoadSheddingDays, err = s.calc.LoadSheddingDays(t); err != nil {
		return sec, err
	}
	if sec.UptimePercentage, err = s.calc.UptimePercentage(t); err != nil {
		return sec, err
	}
	if sec.Stats, err = s.calc.VoltageStats(t); err != nil {
		return sec, err
	}
	l1 := s.calc.Selector().Columns.GridVoltage.L1
	sec.LongDurationVoltageVariation, err = s.pq.LongDurationVoltageVariation(t, l1)
	return sec, err
}

func (s *Service) frequencySection(t *table.Table) (FrequencySection, error) {
	var sec FrequencySection
	var err error
	if sec.WrongFrequencyInstances, err = s.calc.WrongFrequencyInstances(t); err != nil {
		return sec, err
	}
	if sec.WrongFrequencyDays, err = s.calc.WrongFrequencyDays(t); err != nil {
		return sec, err
	}
	if sec.Stats, err = s.calc.FrequencyStats(t); err != nil {
		return sec, err
	}
	l1 := s.calc.Selector().Columns.GridFrequency.L1
	sec.PowerFrequencyVariation, err = s.pq.PowerFrequencyVariation(t, l1)
	return sec, err
}

func (s *Service) gridConnectionSection(t *table.Table) (GridConnectionSection, error) {
	var sec GridConnectionSection
	var err error
	if sec.DisconnectedInstances, err = s.calc.GridDisconnectedInstances(t); err != nil {
		return sec, err
	}
	sec.DisconnectedDays, err = s.calc.GridDisconnectedDays(t)
	return sec, err
}

func (s *Service) batterySection(t *table.Table) (BatterySection, error) {
	var sec BatterySection
	var err error
	if sec.AverageSOC, err = s.calc.AverageBatterySOC(t); err != nil {
		return sec, err
	}
	if sec.DrainDays, err = s.calc.BatteryDrainDays(t); err != nil {
		return sec, err
	}
	sec.Stats, err = s.calc.BatterySOCStats(t)
	return sec, err
}

func (s *Service) gridImpexSection(t *table.Table) (GridImpexSection, error) {
	var sec GridImpexSection
	var err error
	if sec.Totals, err = s.calc.ImportExportTotals(t); err != nil {
		return sec, err
	}
	if sec.Efficiency, err = s.calc.ImportExportEfficiency(t); err != nil {
		return sec, err
	}
	sec.Stats, err = s.calc.ImportExportStats(t)
	return sec, err
}
