// Package ingest reads the CSV exports of the Studer, Enphase and OpenWeather
// sources into record tables.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"sustainability_dashboard/internal/table"
)

// Parser reads one source export and returns its records.
type Parser interface {
	Parse(r io.Reader) (*table.Table, error)
}

// parseFloat returns NaN for empty or non-numeric cells.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// readHeader reads the header row and maps column names to positions.
// Every name in required must be present.
func readHeader(reader *csv.Reader, required ...string) ([]string, map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty input")
		}
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		header[i] = name
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	for _, name := range required {
		if _, ok := pos[name]; !ok {
			return nil, nil, fmt.Errorf("missing column %q in header %v", name, header)
		}
	}
	return header, pos, nil
}

// field returns the cell at i, or "" when the record is short.
func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
