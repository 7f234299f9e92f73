package dashboard

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/enphase"
	"sustainability_dashboard/internal/metrics"
	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/pq"
	"sustainability_dashboard/internal/store"
	"sustainability_dashboard/internal/studer"
	"sustainability_dashboard/internal/table"
	"sustainability_dashboard/internal/weather"
)

var (
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrUnknownField   = errors.New("unknown field")
)

// DatasetInfo describes one loaded dataset.
type DatasetInfo struct {
	Name      model.Dataset   `json:"name"`
	Rows      int             `json:"rows"`
	Columns   []string        `json:"columns"`
	TimeRange model.TimeRange `json:"time_range"`
}

// Notifier is told when the datasets have been (re)loaded.
type Notifier interface {
	OnDataLoaded(datasets []DatasetInfo)
}

// Loader reads every dataset from its source.
type Loader func() (map[model.Dataset]*table.Table, error)

// Service computes dashboard sections from the store. Nothing is cached;
// every call recomputes from the rows in view.
type Service struct {
	store   *store.Store
	calc    *metrics.Calculator
	pq      *pq.Evaluator
	enphase *enphase.Analyzer
	load    Loader

	mu       sync.Mutex // serializes reloads
	notifier Notifier
}

func NewService(st *store.Store, cfg *config.Config, load Loader) (*Service, error) {
	ea, err := enphase.NewAnalyzer(cfg.Columns.EnphaseEnergy)
	if err != nil {
		return nil, fmt.Errorf("enphase columns: %w", err)
	}
	return &Service{
		store:   st,
		calc:    metrics.NewCalculator(studer.NewSelector(cfg.Columns), cfg.Thresholds),
		pq:      pq.NewEvaluator(cfg.PQ),
		enphase: ea,
		load:    load,
	}, nil
}

func (s *Service) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Datasets describes every loaded dataset.
func (s *Service) Datasets() []DatasetInfo {
	names := s.store.Names()
	out := make([]DatasetInfo, 0, len(names))
	for _, name := range names {
		t, ok := s.store.Dataset(name)
		if !ok {
			continue
		}
		tr, _ := s.store.TimeRange(name)
		out = append(out, DatasetInfo{
			Name:      name,
			Rows:      t.Len(),
			Columns:   t.Columns(),
			TimeRange: tr,
		})
	}
	return out
}

// WeatherReport computes the weather sections for the view.
func (s *Service) WeatherReport(v View) (weather.Report, error) {
	t, err := s.rows(model.DatasetWeather, v)
	if err != nil {
		return weather.Report{}, err
	}
	return weather.Analyze(t), nil
}

// EnphaseReport computes the Enphase sections for the view.
func (s *Service) EnphaseReport(v View) (enphase.Report, error) {
	t, err := s.rows(model.DatasetEnphase, v)
	if err != nil {
		return enphase.Report{}, err
	}
	return s.enphase.Report(t)
}

// Reload re-reads every source, swaps the datasets in and notifies.
func (s *Service) Reload() error {
	if s.load == nil {
		return fmt.Errorf("no loader configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sets, err := s.load()
	if err != nil {
		return fmt.Errorf("reloading datasets: %w", err)
	}
	s.store.Replace(sets)

	datasets := s.Datasets()
	log.Printf("Reloaded %d datasets", len(datasets))
	if s.notifier != nil {
		s.notifier.OnDataLoaded(datasets)
	}
	return nil
}

// rows returns the rows of a dataset inside the view bounds.
func (s *Service) rows(name model.Dataset, v View) (*table.Table, error) {
	t, ok := s.store.Between(name, v.Start, v.End)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
	}
	return t, nil
}
