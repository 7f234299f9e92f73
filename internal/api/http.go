package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"sustainability_dashboard/internal/dashboard"
	"sustainability_dashboard/internal/model"
	"sustainability_dashboard/internal/table"
)

type handler struct {
	svc *dashboard.Service
}

type errorResponse struct {
	Error string `json:"error"`
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (h *handler) listDatasets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Datasets())
}

func (h *handler) getDataset(w http.ResponseWriter, r *http.Request) {
	name := model.Dataset(mux.Vars(r)["name"])
	for _, ds := range h.svc.Datasets() {
		if ds.Name == name {
			writeJSON(w, http.StatusOK, ds)
			return
		}
	}
	writeError(w, fmt.Errorf("%w: %s", dashboard.ErrUnknownDataset, name))
}

func (h *handler) gridReport(w http.ResponseWriter, r *http.Request) {
	v, ok := viewFromQuery(w, r, model.DatasetStuder)
	if !ok {
		return
	}
	report, err := h.svc.GridReport(v)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) gridSeries(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if field == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing field parameter"})
		return
	}
	v, ok := viewFromQuery(w, r, model.DatasetStuder)
	if !ok {
		return
	}
	series, err := h.svc.Series(v, field)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (h *handler) weatherReport(w http.ResponseWriter, r *http.Request) {
	v, ok := viewFromQuery(w, r, model.DatasetWeather)
	if !ok {
		return
	}
	report, err := h.svc.WeatherReport(v)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) enphaseReport(w http.ResponseWriter, r *http.Request) {
	v, ok := viewFromQuery(w, r, model.DatasetEnphase)
	if !ok {
		return
	}
	report, err := h.svc.EnphaseReport(v)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) reload(w http.ResponseWriter, _ *http.Request) {
	if err := h.svc.Reload(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Datasets())
}

// viewFromQuery reads the start and end query parameters. On failure it
// writes a 400 response and returns false.
func viewFromQuery(w http.ResponseWriter, r *http.Request, dataset model.Dataset) (dashboard.View, bool) {
	q := r.URL.Query()
	v, err := dashboard.ViewFromDates(dataset, q.Get("start"), q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return dashboard.View{}, false
	}
	return v, true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, table.ErrMissingField):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, dashboard.ErrUnknownDataset):
		status = http.StatusNotFound
	case errors.Is(err, dashboard.ErrUnknownField):
		status = http.StatusBadRequest
	default:
		log.Printf("API error: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
