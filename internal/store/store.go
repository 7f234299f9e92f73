package store

import (
	"sort"
	"sync"
	"time"

	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/table"
)

// Store holds the loaded datasets in memory, keyed by dataset name. Tables
// are kept sorted by timestamp and are never modified after they are stored.
type Store struct {
	mu       sync.RWMutex
	datasets map[model.Dataset]*table.Table
}

func New() *Store {
	return &Store{
		datasets: make(map[model.Dataset]*table.Table),
	}
}

// Put stores a dataset, replacing any previous one with the same name.
// Unsorted tables are normalized first.
func (s *Store) Put(name model.Dataset, t *table.Table) {
	if !t.IsSorted() {
		t = t.Normalize()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[name] = t
}

// Replace swaps in a complete set of datasets at once.
func (s *Store) Replace(sets map[model.Dataset]*table.Table) {
	next := make(map[model.Dataset]*table.Table, len(sets))
	for name, t := range sets {
		if !t.IsSorted() {
			t = t.Normalize()
		}
		next[name] = t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets = next
}

// Dataset returns a stored dataset.
func (s *Store) Dataset(name model.Dataset) (*table.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.datasets[name]
	return t, ok
}

// Names returns the stored dataset names in sorted order.
func (s *Store) Names() []model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]model.Dataset, 0, len(s.datasets))
	for name := range s.datasets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// RowCount returns the number of rows in a dataset.
func (s *Store) RowCount(name model.Dataset) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.datasets[name]; ok {
		return t.Len()
	}
	return 0
}

// TimeRange returns the time range covered by a dataset.
func (s *Store) TimeRange(name model.Dataset) (model.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.datasets[name]
	if !ok || t.Len() == 0 {
		return model.TimeRange{}, false
	}
	return model.TimeRange{
		Start: t.Time(0),
		End:   t.Time(t.Len() - 1),
	}, true
}

// GlobalTimeRange returns the union of all datasets' time ranges.
func (s *Store) GlobalTimeRange() (model.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var start, end time.Time
	first := true

	for _, t := range s.datasets {
		if t.Len() == 0 {
			continue
		}
		tStart := t.Time(0)
		tEnd := t.Time(t.Len() - 1)

		if first || tStart.Before(start) {
			start = tStart
		}
		if first || tEnd.After(end) {
			end = tEnd
		}
		first = false
	}

	if first {
		return model.TimeRange{}, false
	}
	return model.TimeRange{Start: start, End: end}, true
}

// Between returns a dataset's rows between start (inclusive) and end
// (exclusive). A zero start or end leaves that side open.
func (s *Store) Between(name model.Dataset, start, end time.Time) (*table.Table, bool) {
	s.mu.RLock()
	t, ok := s.datasets[name]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if start.IsZero() && end.IsZero() {
		return t, true
	}
	if start.IsZero() && t.Len() > 0 {
		start = t.Time(0)
	}
	if end.IsZero() && t.Len() > 0 {
		end = t.Time(t.Len() - 1).Add(time.Nanosecond)
	}
	return t.Between(start, end), true
}
