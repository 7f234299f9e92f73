package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"sustainability_dashboard/internal/table"
)

const (
	studerPreambleLines = 3
	studerTrailingCols  = 2
	// StuderMaxRows caps the data rows read from one daily export.
	StuderMaxRows = 1440
)

// Studer timestamps are day first. Single-digit days and months parse too.
var studerTimeLayouts = []string{
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// StuderParser reads a Studer Xtender daily export: a three line preamble,
// then headerless rows whose last two fields are dropped. Fields are named
// by position from Layout, whose first entry is the timestamp.
type StuderParser struct {
	Layout  []string
	MaxRows int
}

func NewStuderParser(layout []string) *StuderParser {
	return &StuderParser{Layout: layout, MaxRows: StuderMaxRows}
}

func (p *StuderParser) Parse(r io.Reader) (*table.Table, error) {
	if len(p.Layout) < 2 {
		return nil, fmt.Errorf("studer layout needs a timestamp and at least one field")
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	for i := 0; i < studerPreambleLines; i++ {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("empty input")
			}
			return nil, fmt.Errorf("reading CSV line %d: %w", i+1, err)
		}
	}

	fields := p.Layout[1:]
	var index []time.Time
	cols := make([][]float64, len(fields))
	skipped := 0

	line := studerPreambleLines
	rows := 0
	for p.MaxRows <= 0 || rows < p.MaxRows {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}
		rows++

		if len(record) <= studerTrailingCols {
			skipped++
			continue
		}
		record = record[:len(record)-studerTrailingCols]
		if len(record) > len(p.Layout) {
			skipped++
			continue
		}

		ts, err := parseStuderTime(record[0])
		if err != nil {
			skipped++
			continue
		}
		index = append(index, ts)
		for i := range fields {
			cols[i] = append(cols[i], parseFloat(field(record, i+1)))
		}
	}

	if skipped > 0 {
		log.Printf("Studer export: skipped %d malformed rows", skipped)
	}

	t := table.New(index)
	for i, name := range fields {
		if err := t.SetNumeric(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseStuderTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range studerTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
