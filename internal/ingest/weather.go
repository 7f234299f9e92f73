package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"sustainability_dashboard/internal/table"
)

// WeatherParser reads an OpenWeather history export. Only the configured
// numeric and text columns are kept; configured columns absent from the file
// are left out. Rows whose timestamp is not a unix time are skipped.
type WeatherParser struct {
	TimestampColumn string
	Numeric         []string
	Text            []string
}

func NewWeatherParser(timestampColumn string, numeric, text []string) *WeatherParser {
	return &WeatherParser{TimestampColumn: timestampColumn, Numeric: numeric, Text: text}
}

func (p *WeatherParser) Parse(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	_, pos, err := readHeader(reader, p.TimestampColumn)
	if err != nil {
		return nil, err
	}
	tsCol := pos[p.TimestampColumn]

	numeric := present(p.Numeric, pos)
	text := present(p.Text, pos)

	var index []time.Time
	numCols := make([][]float64, len(numeric))
	textCols := make([][]string, len(text))
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

		ts, ok := parseUnix(field(record, tsCol))
		if !ok {
			continue
		}
		index = append(index, ts)
		for i, name := range numeric {
			numCols[i] = append(numCols[i], parseFloat(field(record, pos[name])))
		}
		for i, name := range text {
			textCols[i] = append(textCols[i], strings.TrimSpace(field(record, pos[name])))
		}
	}

	t := table.New(index)
	for i, name := range numeric {
		if err := t.SetNumeric(name, orEmpty(numCols[i])); err != nil {
			return nil, err
		}
	}
	for i, name := range text {
		vals := textCols[i]
		if vals == nil {
			vals = []string{}
		}
		if err := t.SetText(name, vals); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func present(names []string, pos map[string]int) []string {
	var out []string
	for _, name := range names {
		if _, ok := pos[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// parseUnix parses unix seconds, integral or fractional, as UTC.
func parseUnix(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

func orEmpty(vals []float64) []float64 {
	if vals == nil {
		return []float64{}
	}
	return vals
}
