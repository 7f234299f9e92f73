// Package enphase computes energy production and consumption figures from
// Enphase 15-minute exports.
package enphase

import (
	"fmt"
	"math"

	"sustainability_dashboard/internal/table"
	"sustainability_dashboard/internal/weather"
)

// Energy holds the four Enphase energy metrics in Wh.
type Energy struct {
	Produced float64 `json:"produced"`
	Consumed float64 `json:"consumed"`
	Exported float64 `json:"exported"`
	Imported float64 `json:"imported"`
}

type DailyEnergy struct {
	Date string `json:"date"`
	Energy
	Balance Balance `json:"balance"`
}

type HourlyEnergy struct {
	Hour int `json:"hour"`
	Energy
}

// Balance derives the energy balance from totals.
type Balance struct {
	NetEnergy           float64 `json:"net_energy"`
	GridBalance         float64 `json:"grid_balance"`
	SelfConsumption     float64 `json:"self_consumption"`
	SelfConsumptionRate float64 `json:"self_consumption_rate"`
}

type Report struct {
	Rows    int                        `json:"rows"`
	Totals  Energy                     `json:"totals"`
	Balance Balance                    `json:"balance"`
	Summary map[string]weather.Summary `json:"summary"`
	Daily   []DailyEnergy              `json:"daily"`
	Hourly  []HourlyEnergy             `json:"hourly"`
}

// Analyzer reads the energy metrics by their column names, in the order
// produced, consumed, exported, imported.
type Analyzer struct {
	columns [4]string
}

func NewAnalyzer(energyColumns []string) (*Analyzer, error) {
	if len(energyColumns) != 4 {
		return nil, fmt.Errorf("expected 4 energy columns, got %d", len(energyColumns))
	}
	a := &Analyzer{}
	copy(a.columns[:], energyColumns)
	return a, nil
}

// ComputeBalance derives the balance figures. The self consumption rate is a
// percentage of production, or 0 when nothing was produced.
func ComputeBalance(e Energy) Balance {
	b := Balance{
		NetEnergy:       e.Produced - e.Consumed,
		GridBalance:     e.Exported - e.Imported,
		SelfConsumption: e.Produced - e.Exported,
	}
	if e.Produced > 0 {
		b.SelfConsumptionRate = b.SelfConsumption / e.Produced * 100
	}
	return b
}

// Totals sums each metric over all rows; missing values are skipped.
func (a *Analyzer) Totals(t *table.Table) (Energy, error) {
	cols, err := a.read(t)
	if err != nil {
		return Energy{}, err
	}
	all := make([]int, t.Len())
	for i := range all {
		all[i] = i
	}
	return sumRows(cols, all), nil
}

// DailyTotals sums each metric per calendar date.
func (a *Analyzer) DailyTotals(t *table.Table) ([]DailyEnergy, error) {
	cols, err := a.read(t)
	if err != nil {
		return nil, err
	}
	groups := t.DayGroups()
	out := make([]DailyEnergy, 0, len(groups))
	for _, g := range groups {
		e := sumRows(cols, g.Rows)
		out = append(out, DailyEnergy{Date: g.Date, Energy: e, Balance: ComputeBalance(e)})
	}
	return out, nil
}

// HourlyAverages averages each metric per hour of day. Hours without rows
// are omitted.
func (a *Analyzer) HourlyAverages(t *table.Table) ([]HourlyEnergy, error) {
	cols, err := a.read(t)
	if err != nil {
		return nil, err
	}
	var out []HourlyEnergy
	for h, rows := range t.HourGroups() {
		if len(rows) == 0 {
			continue
		}
		out = append(out, HourlyEnergy{Hour: h, Energy: Energy{
			Produced: mean(cols[0], rows),
			Consumed: mean(cols[1], rows),
			Exported: mean(cols[2], rows),
			Imported: mean(cols[3], rows),
		}})
	}
	return out, nil
}

// Report computes the Enphase section over t.
func (a *Analyzer) Report(t *table.Table) (Report, error) {
	totals, err := a.Totals(t)
	if err != nil {
		return Report{}, err
	}
	daily, err := a.DailyTotals(t)
	if err != nil {
		return Report{}, err
	}
	hourly, err := a.HourlyAverages(t)
	if err != nil {
		return Report{}, err
	}

	summary := make(map[string]weather.Summary, len(a.columns))
	for _, name := range a.columns {
		vals, err := t.Numeric(name)
		if err != nil {
			return Report{}, err
		}
		summary[name] = weather.Describe(vals)
	}

	return Report{
		Rows:    t.Len(),
		Totals:  totals,
		Balance: ComputeBalance(totals),
		Summary: summary,
		Daily:   daily,
		Hourly:  hourly,
	}, nil
}

func (a *Analyzer) read(t *table.Table) ([4][]float64, error) {
	var cols [4][]float64
	for i, name := range a.columns {
		vals, err := t.Numeric(name)
		if err != nil {
			return cols, err
		}
		cols[i] = vals
	}
	return cols, nil
}

func sumRows(cols [4][]float64, rows []int) Energy {
	var sums [4]float64
	for i, col := range cols {
		for _, r := range rows {
			if !math.IsNaN(col[r]) {
				sums[i] += col[r]
			}
		}
	}
	return Energy{Produced: sums[0], Consumed: sums[1], Exported: sums[2], Imported: sums[3]}
}

// mean returns 0 when no row has a value.
func mean(col []float64, rows []int) float64 {
	var sum float64
	var n int
	for _, r := range rows {
		if !math.IsNaN(col[r]) {
			sum += col[r]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
