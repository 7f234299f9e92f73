package metrics

import (
	"fmt"

	"sustainability_dashboard/internal/table"
)

// ImportExportTotals holds the per-phase sums of the net exchange. Negative
// values are exports; TotalExport adds up only the negative phase sums.
type ImportExportTotals struct {
	TotalExport float64 `json:"total_export"`
	L1          float64 `json:"l1"`
	L2          float64 `json:"l2"`
	L3          float64 `json:"l3"`
}

type ImportExportEfficiency struct {
	ExportInstances int     `json:"export_instances"`
	ImportInstances int     `json:"import_instances"`
	Efficiency      float64 `json:"efficiency"`
}

func (c *Calculator) ImportExportTotals(t *table.Table) (ImportExportTotals, error) {
	ex, err := c.sel.GridNetExportImport(t)
	if err != nil {
		return ImportExportTotals{}, fmt.Errorf("selecting net exchange: %w", err)
	}

	var sums [3]float64
	for i, name := range ex.Columns() {
		col, err := ex.Numeric(name)
		if err != nil {
			return ImportExportTotals{}, err
		}
		for _, v := range col {
			sums[i] += v
		}
	}

	totals := ImportExportTotals{L1: sums[0], L2: sums[1], L3: sums[2]}
	for _, s := range sums {
		if s < 0 {
			totals.TotalExport += s
		}
	}
	return totals, nil
}

// ImportExportEfficiency counts rows exporting on any phase and rows
// importing on any phase. A row can be both. Efficiency is the share of
// exporting rows.
func (c *Calculator) ImportExportEfficiency(t *table.Table) (ImportExportEfficiency, error) {
	ex, err := c.sel.GridNetExportImport(t)
	if err != nil {
		return ImportExportEfficiency{}, fmt.Errorf("selecting net exchange: %w", err)
	}
	exporting, err := anyPhase(ex, func(x float64) bool { return x < 0 })
	if err != nil {
		return ImportExportEfficiency{}, err
	}
	importing, err := anyPhase(ex, func(x float64) bool { return x > 0 })
	if err != nil {
		return ImportExportEfficiency{}, err
	}

	e := ImportExportEfficiency{
		ExportInstances: countTrue(exporting),
		ImportInstances: countTrue(importing),
	}
	e.Efficiency = ratio(e.ExportInstances, ex.Len())
	return e, nil
}

func (c *Calculator) ImportExportStats(t *table.Table) ([]ColumnStats, error) {
	ex, err := c.sel.GridNetExportImport(t)
	if err != nil {
		return nil, err
	}
	return Stats(ex, ex.Columns())
}
