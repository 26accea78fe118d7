package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pnotequalnp/thread-master/core/log"
)

// HTTPHandler serves the operational endpoints
type HTTPHandler struct {
	gatherer prometheus.Gatherer
}

func NewHTTPHandler(gatherer prometheus.Gatherer) *HTTPHandler {
	return &HTTPHandler{gatherer: gatherer}
}

func (h *HTTPHandler) SetupEndpoints(router *mux.Router) {
	router.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
}

func (h *HTTPHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		log.Error("❌ Failed to write health check response: %v", err)
	}
}
