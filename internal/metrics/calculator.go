package metrics

import (
	"fmt"
	"math"

	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/studer"
	"sustainability_dashboard/internal/table"
)

// DayCompliance summarizes a per-day check. A day is bad only when its rows
// contain both flagged and unflagged readings; a day flagged throughout counts
// as good.
type DayCompliance struct {
	BadDays    int     `json:"bad_days"`
	GoodDays   int     `json:"good_days"`
	TotalDays  int     `json:"total_days"`
	Efficiency float64 `json:"efficiency"`
}

// Calculator computes grid metrics from Studer records. It never modifies the
// tables it is given.
type Calculator struct {
	sel *studer.Selector
	th  config.Thresholds
}

func NewCalculator(sel *studer.Selector, th config.Thresholds) *Calculator {
	return &Calculator{sel: sel, th: th}
}

// Selector returns the column selector the calculator reads through.
func (c *Calculator) Selector() *studer.Selector {
	return c.sel
}

// LoadSheddingInstances counts rows where any phase voltage is below the
// load shedding threshold.
func (c *Calculator) LoadSheddingInstances(t *table.Table) (int, error) {
	mask, err := c.loadSheddingMask(t)
	if err != nil {
		return 0, err
	}
	return countTrue(mask), nil
}

// LoadSheddingDays reports days with load shedding. Efficiency is the share
// of bad days.
func (c *Calculator) LoadSheddingDays(t *table.Table) (DayCompliance, error) {
	mask, err := c.loadSheddingMask(t)
	if err != nil {
		return DayCompliance{}, err
	}
	d := dayCompliance(t, mask)
	d.Efficiency = ratio(d.BadDays, d.TotalDays)
	return d, nil
}

// UptimePercentage is the share of rows without load shedding, in percent.
func (c *Calculator) UptimePercentage(t *table.Table) (float64, error) {
	n, err := c.LoadSheddingInstances(t)
	if err != nil {
		return 0, err
	}
	if t.Len() == 0 {
		return 0, nil
	}
	return float64(t.Len()-n) / float64(t.Len()) * 100, nil
}

func (c *Calculator) VoltageStats(t *table.Table) ([]ColumnStats, error) {
	v, err := c.sel.GridInputVoltages(t)
	if err != nil {
		return nil, err
	}
	return Stats(v, v.Columns())
}

// WrongFrequencyInstances counts rows where any phase frequency is outside
// the allowed band.
func (c *Calculator) WrongFrequencyInstances(t *table.Table) (int, error) {
	mask, err := c.wrongFrequencyMask(t)
	if err != nil {
		return 0, err
	}
	return countTrue(mask), nil
}

// WrongFrequencyDays reports days with off-band frequency. Efficiency is the
// share of good days.
func (c *Calculator) WrongFrequencyDays(t *table.Table) (DayCompliance, error) {
	mask, err := c.wrongFrequencyMask(t)
	if err != nil {
		return DayCompliance{}, err
	}
	d := dayCompliance(t, mask)
	d.Efficiency = ratio(d.GoodDays, d.TotalDays)
	return d, nil
}

func (c *Calculator) FrequencyStats(t *table.Table) ([]ColumnStats, error) {
	f, err := c.sel.GridInputFrequencies(t)
	if err != nil {
		return nil, err
	}
	return Stats(f, f.Columns())
}

// GridDisconnectedInstances counts rows where any phase reports a status
// below the connected value.
func (c *Calculator) GridDisconnectedInstances(t *table.Table) (int, error) {
	mask, err := c.disconnectedMask(t)
	if err != nil {
		return 0, err
	}
	return countTrue(mask), nil
}

// GridDisconnectedDays reports days with a grid disconnection. Efficiency is
// the share of good days.
func (c *Calculator) GridDisconnectedDays(t *table.Table) (DayCompliance, error) {
	mask, err := c.disconnectedMask(t)
	if err != nil {
		return DayCompliance{}, err
	}
	d := dayCompliance(t, mask)
	d.Efficiency = ratio(d.GoodDays, d.TotalDays)
	return d, nil
}

// AverageBatterySOC is the mean of the present state of charge readings,
// or 0 when there are none.
func (c *Calculator) AverageBatterySOC(t *table.Table) (float64, error) {
	soc, err := t.Numeric(c.sel.Columns.BatterySOC)
	if err != nil {
		if !t.Has(c.sel.Columns.BatterySOC) {
			return 0, err
		}
		// text column: coerce through the selector, then average everything
		soc, err = c.sel.BatterySOC(t)
		if err != nil {
			return 0, err
		}
	}
	var sum float64
	var n int
	for _, v := range soc {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// BatteryDrainDays reports days where the battery drained below the drain
// threshold. Efficiency is the share of good days.
func (c *Calculator) BatteryDrainDays(t *table.Table) (DayCompliance, error) {
	soc, err := c.sel.BatterySOC(t)
	if err != nil {
		return DayCompliance{}, err
	}
	mask := make([]bool, len(soc))
	for i, v := range soc {
		mask[i] = v < c.th.BatteryDrainSOC
	}
	d := dayCompliance(t, mask)
	d.Efficiency = ratio(d.GoodDays, d.TotalDays)
	return d, nil
}

// BatterySOCStats summarizes the raw state of charge column; missing readings
// are skipped rather than zero-filled.
func (c *Calculator) BatterySOCStats(t *table.Table) ([]ColumnStats, error) {
	name := c.sel.Columns.BatterySOC
	if t.Has(name) && !t.IsNumeric(name) {
		soc, err := c.sel.BatterySOC(t)
		if err != nil {
			return nil, err
		}
		s := Summarize(soc)
		s.Column = name
		return []ColumnStats{s}, nil
	}
	return Stats(t, []string{name})
}

func (c *Calculator) loadSheddingMask(t *table.Table) ([]bool, error) {
	v, err := c.sel.GridInputVoltages(t)
	if err != nil {
		return nil, fmt.Errorf("selecting voltages: %w", err)
	}
	return anyPhase(v, func(x float64) bool {
		return x < c.th.LoadSheddingVoltage
	})
}

func (c *Calculator) wrongFrequencyMask(t *table.Table) ([]bool, error) {
	f, err := c.sel.GridInputFrequencies(t)
	if err != nil {
		return nil, fmt.Errorf("selecting frequencies: %w", err)
	}
	return anyPhase(f, func(x float64) bool {
		return x < c.th.FrequencyMin || x > c.th.FrequencyMax
	})
}

func (c *Calculator) disconnectedMask(t *table.Table) ([]bool, error) {
	s, err := c.sel.GridStatus(t)
	if err != nil {
		return nil, fmt.Errorf("selecting grid status: %w", err)
	}
	return anyPhase(s, func(x float64) bool {
		return x < c.th.GridConnectedStatus
	})
}

// anyPhase flags rows where pred holds for at least one column.
func anyPhase(phases *table.Table, pred func(float64) bool) ([]bool, error) {
	mask := make([]bool, phases.Len())
	for _, name := range phases.Columns() {
		col, err := phases.Numeric(name)
		if err != nil {
			return nil, err
		}
		for i, v := range col {
			if pred(v) {
				mask[i] = true
			}
		}
	}
	return mask, nil
}

// dayCompliance groups mask by calendar day. Efficiency is left to the caller.
func dayCompliance(t *table.Table, mask []bool) DayCompliance {
	var d DayCompliance
	for _, g := range t.DayGroups() {
		var flagged, clear bool
		for _, r := range g.Rows {
			if mask[r] {
				flagged = true
			} else {
				clear = true
			}
		}
		if flagged && clear {
			d.BadDays++
		}
		d.TotalDays++
	}
	d.GoodDays = d.TotalDays - d.BadDays
	return d
}

func countTrue(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
