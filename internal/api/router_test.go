package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/dashboard"
	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/store"
	"sustainability_dashboard/internal/table"
)

var (
	cols = config.DefaultColumns()
	day1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
)

func studerTable(t *testing.T, n int) *table.Table {
	t.Helper()
	idx := make([]time.Time, n)
	for i := range idx {
		idx[i] = day1.Add(time.Duration(i) * time.Hour)
	}
	fill := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}
	tbl := table.New(idx)
	for _, p := range []config.Phase{cols.GridVoltage, cols.GridFrequency, cols.GridStatus, cols.GridNetExchange} {
		for _, name := range p.Names() {
			require.NoError(t, tbl.SetNumeric(name, fill(1)))
		}
	}
	require.NoError(t, tbl.SetNumeric(cols.BatterySOC, fill(50)))
	return tbl
}

func testServer(t *testing.T, sets map[model.Dataset]*table.Table, load dashboard.Loader) *httptest.Server {
	t.Helper()
	st := store.New()
	st.Replace(sets)
	cfg := &config.Config{Columns: cols, Thresholds: config.DefaultThresholds(), PQ: config.DefaultPQLimits()}
	svc, err := dashboard.NewService(st, cfg, load)
	require.NoError(t, err)

	server := httptest.NewServer(NewRouter(svc, nil))
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	server := testServer(t, nil, nil)
	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDatasets(t *testing.T) {
	server := testServer(t, map[model.Dataset]*table.Table{
		model.DatasetStuder: studerTable(t, 3),
	}, nil)

	var list []dashboard.DatasetInfo
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/v1/datasets", &list))
	require.Len(t, list, 1)
	assert.Equal(t, model.DatasetStuder, list[0].Name)
	assert.Equal(t, 3, list[0].Rows)
	assert.Equal(t, day1, list[0].TimeRange.Start)

	var one dashboard.DatasetInfo
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/v1/datasets/studer", &one))
	assert.Equal(t, 3, one.Rows)

	var e errorResponse
	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/api/v1/datasets/solar", &e))
	assert.Contains(t, e.Error, "unknown dataset")
}

func TestGridReport(t *testing.T) {
	server := testServer(t, map[model.Dataset]*table.Table{
		model.DatasetStuder: studerTable(t, 48),
	}, nil)

	var r dashboard.GridReport
	status := getJSON(t, server.URL+"/api/v1/grid/report?start=2024-03-02&end=2024-03-02", &r)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 24, r.Rows)
	// 1 V on every phase is load shedding on every row
	assert.Equal(t, 24, r.Voltage.LoadSheddingInstances)
	assert.Equal(t, 0, r.Voltage.LoadSheddingDays.BadDays)
	assert.InDelta(t, 50, r.Battery.AverageSOC, 1e-9)
}

func TestGridReport_Errors(t *testing.T) {
	broken := table.New([]time.Time{day1})
	require.NoError(t, broken.SetNumeric("other", []float64{1}))

	tests := []struct {
		name   string
		sets   map[model.Dataset]*table.Table
		query  string
		status int
	}{
		{"bad date", map[model.Dataset]*table.Table{model.DatasetStuder: studerTable(t, 1)}, "?start=yesterday", http.StatusBadRequest},
		{"reversed range", map[model.Dataset]*table.Table{model.DatasetStuder: studerTable(t, 1)}, "?start=2024-03-05&end=2024-03-01", http.StatusBadRequest},
		{"no studer data", map[model.Dataset]*table.Table{}, "", http.StatusNotFound},
		{"missing column", map[model.Dataset]*table.Table{model.DatasetStuder: broken}, "", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testServer(t, tt.sets, nil)
			var e errorResponse
			assert.Equal(t, tt.status, getJSON(t, server.URL+"/api/v1/grid/report"+tt.query, &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestGridSeries(t *testing.T) {
	server := testServer(t, map[model.Dataset]*table.Table{
		model.DatasetStuder: studerTable(t, 4),
	}, nil)

	var s dashboard.Series
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/v1/grid/series?field=frequency", &s))
	assert.Equal(t, "frequency", s.Field)
	assert.Len(t, s.Timestamps, 4)
	assert.Len(t, s.Columns, 3)

	var e errorResponse
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/api/v1/grid/series", &e))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/api/v1/grid/series?field=wind", &e))
}

func TestWeatherAndEnphaseReports(t *testing.T) {
	w := table.New([]time.Time{day1})
	require.NoError(t, w.SetNumeric("clouds_all", []float64{95}))
	e := table.New([]time.Time{day1})
	for _, name := range cols.EnphaseEnergy {
		require.NoError(t, e.SetNumeric(name, []float64{5}))
	}
	server := testServer(t, map[model.Dataset]*table.Table{
		model.DatasetWeather: w,
		model.DatasetEnphase: e,
	}, nil)

	var wr struct {
		Rows            int `json:"rows"`
		CloudCategories []struct {
			Label string `json:"label"`
			Count int    `json:"count"`
		} `json:"cloud_categories"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/v1/weather/report", &wr))
	assert.Equal(t, 1, wr.Rows)
	require.Len(t, wr.CloudCategories, 5)
	assert.Equal(t, 1, wr.CloudCategories[4].Count)

	var er struct {
		Totals struct {
			Produced float64 `json:"produced"`
		} `json:"totals"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/v1/enphase/report?start=2024-03-01", &er))
	assert.Equal(t, 5.0, er.Totals.Produced)
}

func TestReload(t *testing.T) {
	calls := 0
	server := testServer(t, nil, func() (map[model.Dataset]*table.Table, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("source unavailable")
		}
		return map[model.Dataset]*table.Table{model.DatasetStuder: studerTable(t, 2)}, nil
	})

	resp, err := http.Post(server.URL+"/api/v1/reload", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list []dashboard.DatasetInfo
	getJSON(t, server.URL+"/api/v1/datasets", &list)
	assert.Len(t, list, 1)

	resp, err = http.Post(server.URL+"/api/v1/reload", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// GET is not routed
	resp, err = http.Get(server.URL + "/api/v1/reload")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
