package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"sustainability_dashboard/internal/table"
)

// EnphaseTimeLayout is the month-first Date/Time format of the 15-minute
// export.
const EnphaseTimeLayout = "1/2/2006 15:04"

// EnphaseParser reads an Enphase 15-minute energy export. Every column other
// than the timestamp is read as a number.
type EnphaseParser struct {
	TimestampColumn string
}

func NewEnphaseParser(timestampColumn string) *EnphaseParser {
	return &EnphaseParser{TimestampColumn: timestampColumn}
}

func (p *EnphaseParser) Parse(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, pos, err := readHeader(reader, p.TimestampColumn)
	if err != nil {
		return nil, err
	}
	tsCol := pos[p.TimestampColumn]

	var index []time.Time
	cols := make(map[string][]float64)
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		ts, err := time.Parse(EnphaseTimeLayout, strings.TrimSpace(field(record, tsCol)))
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp on line %d: %w", line, err)
		}
		index = append(index, ts)
		for i, name := range header {
			if i == tsCol {
				continue
			}
			cols[name] = append(cols[name], parseFloat(field(record, i)))
		}
	}

	t := table.New(index)
	for i, name := range header {
		if i == tsCol || name == "" {
			continue
		}
		vals := cols[name]
		if vals == nil {
			vals = []float64{}
		}
		if err := t.SetNumeric(name, vals); err != nil {
			return nil, err
		}
	}
	return t, nil
}
