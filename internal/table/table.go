package table

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrMissingField is wrapped by every MissingFieldError.
var ErrMissingField = errors.New("missing field")

// MissingFieldError reports a column that a calculation needs but the table
// does not carry.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// Table is a time-indexed set of rows with named numeric and text columns.
// Missing numeric values are NaN, missing text values are empty strings.
//
// A Table is treated as immutable once built: every operation returns a new
// Table and accessors hand out copies.
type Table struct {
	index   []time.Time
	order   []string
	numeric map[string][]float64
	text    map[string][]string
}

// New creates an empty table over the given index.
func New(index []time.Time) *Table {
	idx := make([]time.Time, len(index))
	copy(idx, index)
	return &Table{
		index:   idx,
		numeric: make(map[string][]float64),
		text:    make(map[string][]string),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.index)
}

// Index returns a copy of the row timestamps.
func (t *Table) Index() []time.Time {
	idx := make([]time.Time, len(t.index))
	copy(idx, t.index)
	return idx
}

// Time returns the timestamp of row i.
func (t *Table) Time(i int) time.Time {
	return t.index[i]
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.order))
	copy(cols, t.order)
	return cols
}

func (t *Table) Has(name string) bool {
	_, num := t.numeric[name]
	_, txt := t.text[name]
	return num || txt
}

func (t *Table) IsNumeric(name string) bool {
	_, ok := t.numeric[name]
	return ok
}

// SetNumeric adds or replaces a numeric column.
func (t *Table) SetNumeric(name string, values []float64) error {
	if len(values) != len(t.index) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.index))
	}
	if _, ok := t.text[name]; ok {
		delete(t.text, name)
	} else if _, ok := t.numeric[name]; !ok {
		t.order = append(t.order, name)
	}
	col := make([]float64, len(values))
	copy(col, values)
	t.numeric[name] = col
	return nil
}

// SetText adds or replaces a text column.
func (t *Table) SetText(name string, values []string) error {
	if len(values) != len(t.index) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.index))
	}
	if _, ok := t.numeric[name]; ok {
		delete(t.numeric, name)
	} else if _, ok := t.text[name]; !ok {
		t.order = append(t.order, name)
	}
	col := make([]string, len(values))
	copy(col, values)
	t.text[name] = col
	return nil
}

// Numeric returns a copy of a numeric column.
func (t *Table) Numeric(name string) ([]float64, error) {
	col, ok := t.numeric[name]
	if !ok {
		return nil, &MissingFieldError{Field: name}
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// Text returns a copy of a text column. Numeric columns are not converted.
func (t *Table) Text(name string) ([]string, error) {
	col, ok := t.text[name]
	if !ok {
		return nil, &MissingFieldError{Field: name}
	}
	out := make([]string, len(col))
	copy(out, col)
	return out, nil
}

// Select projects the named columns, in the given order, into a new table
// sharing this table's index.
func (t *Table) Select(names ...string) (*Table, error) {
	out := New(t.index)
	for _, name := range names {
		if col, ok := t.numeric[name]; ok {
			out.SetNumeric(name, col)
			continue
		}
		if col, ok := t.text[name]; ok {
			out.SetText(name, col)
			continue
		}
		return nil, &MissingFieldError{Field: name}
	}
	return out, nil
}

// Rows returns a new table holding the given rows, in the given order.
func (t *Table) Rows(rows []int) *Table {
	idx := make([]time.Time, len(rows))
	for i, r := range rows {
		idx[i] = t.index[r]
	}
	out := New(idx)
	for _, name := range t.order {
		if col, ok := t.numeric[name]; ok {
			vals := make([]float64, len(rows))
			for i, r := range rows {
				vals[i] = col[r]
			}
			out.SetNumeric(name, vals)
		} else {
			col := t.text[name]
			vals := make([]string, len(rows))
			for i, r := range rows {
				vals[i] = col[r]
			}
			out.SetText(name, vals)
		}
	}
	return out
}

// Slice returns rows [i, j).
func (t *Table) Slice(i, j int) *Table {
	if i < 0 {
		i = 0
	}
	if j > len(t.index) {
		j = len(t.index)
	}
	if i > j {
		i = j
	}
	rows := make([]int, 0, j-i)
	for r := i; r < j; r++ {
		rows = append(rows, r)
	}
	return t.Rows(rows)
}

// Between returns the rows with start <= timestamp < end. The table must be
// sorted.
func (t *Table) Between(start, end time.Time) *Table {
	i := sort.Search(len(t.index), func(k int) bool {
		return !t.index[k].Before(start)
	})
	j := sort.Search(len(t.index), func(k int) bool {
		return !t.index[k].Before(end)
	})
	return t.Slice(i, j)
}

// IsSorted reports whether the index is in ascending order.
func (t *Table) IsSorted() bool {
	return sort.SliceIsSorted(t.index, func(i, j int) bool {
		return t.index[i].Before(t.index[j])
	})
}

// Normalize sorts the rows by timestamp and merges rows sharing a timestamp:
// numeric fields take the mean of their present values, text fields the first
// non-empty value.
func (t *Table) Normalize() *Table {
	rows := make([]int, len(t.index))
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return t.index[rows[a]].Before(t.index[rows[b]])
	})

	// groups of row positions sharing one timestamp
	var groups [][]int
	for _, r := range rows {
		n := len(groups)
		if n > 0 && t.index[groups[n-1][0]].Equal(t.index[r]) {
			groups[n-1] = append(groups[n-1], r)
			continue
		}
		groups = append(groups, []int{r})
	}

	idx := make([]time.Time, len(groups))
	for i, g := range groups {
		idx[i] = t.index[g[0]]
	}
	out := New(idx)
	for _, name := range t.order {
		if col, ok := t.numeric[name]; ok {
			vals := make([]float64, len(groups))
			for i, g := range groups {
				vals[i] = meanOf(col, g)
			}
			out.SetNumeric(name, vals)
		} else {
			col := t.text[name]
			vals := make([]string, len(groups))
			for i, g := range groups {
				vals[i] = firstOf(col, g)
			}
			out.SetText(name, vals)
		}
	}
	return out
}

// Concat appends tables row-wise. Columns absent from a part are filled with
// missing values. The result is not normalized.
func Concat(parts ...*Table) *Table {
	var idx []time.Time
	var order []string
	seen := make(map[string]bool)
	numeric := make(map[string]bool)
	for _, p := range parts {
		idx = append(idx, p.index...)
		for _, name := range p.order {
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
				numeric[name] = p.IsNumeric(name)
			}
		}
	}

	out := New(idx)
	for _, name := range order {
		if numeric[name] {
			vals := make([]float64, 0, len(idx))
			for _, p := range parts {
				if col, ok := p.numeric[name]; ok {
					vals = append(vals, col...)
				} else {
					vals = append(vals, nanSlice(p.Len())...)
				}
			}
			out.SetNumeric(name, vals)
		} else {
			vals := make([]string, 0, len(idx))
			for _, p := range parts {
				if col, ok := p.text[name]; ok {
					vals = append(vals, col...)
				} else {
					vals = append(vals, make([]string, p.Len())...)
				}
			}
			out.SetText(name, vals)
		}
	}
	return out
}

func meanOf(col []float64, rows []int) float64 {
	var sum float64
	var n int
	for _, r := range rows {
		if !math.IsNaN(col[r]) {
			sum += col[r]
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func firstOf(col []string, rows []int) string {
	for _, r := range rows {
		if col[r] != "" {
			return col[r]
		}
	}
	return ""
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
