package ingest

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"sustainability_dashboard/internal/table"
)

// LoadFile parses one file and normalizes the result.
func LoadFile(path string, p Parser) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t.Normalize(), nil
}

// LoadStuderDir parses every .csv and .CSV file in dir, concatenates them
// and normalizes the result.
func LoadStuderDir(dir string, p Parser) (*table.Table, error) {
	files, err := csvFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files in %s", dir)
	}

	parts := make([]*table.Table, 0, len(files))
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		t, err := p.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		parts = append(parts, t)
	}

	merged := table.Concat(parts...).Normalize()
	log.Printf("Loaded %d Studer files from %s (%d rows)", len(files), dir, merged.Len())
	return merged, nil
}

func csvFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.csv", "*.CSV"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	sort.Strings(files)
	// case-insensitive filesystems match both patterns
	out := files[:0]
	for i, f := range files {
		if i == 0 || f != files[i-1] {
			out = append(out, f)
		}
	}
	return out, nil
}
