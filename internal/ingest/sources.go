package ingest

import (
	"fmt"
	"log"

	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/table"
)

// Sources locates the exports of every dataset. An empty path disables that
// dataset.
type Sources struct {
	StuderDir   string
	EnphaseFile string
	WeatherFile string
	Columns     config.Columns
}

func SourcesFromConfig(cfg *config.Config) Sources {
	return Sources{
		StuderDir:   cfg.StuderDir,
		EnphaseFile: cfg.EnphaseFile,
		WeatherFile: cfg.WeatherFile,
		Columns:     cfg.Columns,
	}
}

// Load reads every configured dataset. A dataset that fails to load is logged
// and left out; Load fails only when nothing could be loaded.
func (s Sources) Load() (map[model.Dataset]*table.Table, error) {
	sets := make(map[model.Dataset]*table.Table)

	if s.StuderDir != "" {
		t, err := LoadStuderDir(s.StuderDir, NewStuderParser(s.Columns.StuderLayout))
		if err != nil {
			log.Printf("Studer data: %v", err)
		} else {
			sets[model.DatasetStuder] = t
		}
	}

	if s.EnphaseFile != "" {
		t, err := LoadFile(s.EnphaseFile, NewEnphaseParser(s.Columns.EnphaseTimestamp))
		if err != nil {
			log.Printf("Enphase data: %v", err)
		} else {
			log.Printf("Loaded Enphase data from %s (%d rows)", s.EnphaseFile, t.Len())
			sets[model.DatasetEnphase] = t
		}
	}

	if s.WeatherFile != "" {
		p := NewWeatherParser(s.Columns.WeatherTimestamp, s.Columns.WeatherNumeric, s.Columns.WeatherText)
		t, err := LoadFile(s.WeatherFile, p)
		if err != nil {
			log.Printf("Weather data: %v", err)
		} else {
			log.Printf("Loaded weather data from %s (%d rows)", s.WeatherFile, t.Len())
			sets[model.DatasetWeather] = t
		}
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("no dataset could be loaded")
	}
	return sets, nil
}
