// Package api serves the dashboard sections as JSON over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"sustainability_dashboard/internal/dashboard"
)

// NewRouter registers the API routes. ws, when non-nil, is mounted at /ws.
func NewRouter(svc *dashboard.Service, ws http.Handler) *mux.Router {
	h := &handler{svc: svc}
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler).Methods("GET")

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/datasets", h.listDatasets).Methods("GET")
	v1.HandleFunc("/datasets/{name}", h.getDataset).Methods("GET")
	v1.HandleFunc("/grid/report", h.gridReport).Methods("GET")
	v1.HandleFunc("/grid/series", h.gridSeries).Methods("GET")
	v1.HandleFunc("/weather/report", h.weatherReport).Methods("GET")
	v1.HandleFunc("/enphase/report", h.enphaseReport).Methods("GET")
	v1.HandleFunc("/reload", h.reload).Methods("POST")

	if ws != nil {
		r.Handle("/ws", ws)
	}
	return r
}
