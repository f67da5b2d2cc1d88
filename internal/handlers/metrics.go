package handlers

import (
	"log/slog"
	"net/http"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// MetricHandler records and lists file access metrics.
type MetricHandler struct {
	metrics *services.MetricService
	logger  *slog.Logger
}

func NewMetricHandler(metrics *services.MetricService, logger *slog.Logger) *MetricHandler {
	return &MetricHandler{metrics: metrics, logger: logger}
}

// MetricRouter registers metric routes on the given router.
func MetricRouter(r chi.Router, metrics *services.MetricService, logger *slog.Logger) {
	handler := NewMetricHandler(metrics, logger)

	r.Get("/metrics", handler.List)
	r.Post("/metrics", handler.Record)
}

func (h *MetricHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.metrics.List(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err, "failed to fetch metrics")
		return
	}
	writeJSON(w, http.StatusOK, MetricsResponse{Metrics: entries})
}

func (h *MetricHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordMetricRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	metric, err := h.metrics.Record(r.Context(), req.Email, int(req.FileID))
	if err != nil {
		respondError(w, r, h.logger, err, "failed to record metric")
		return
	}
	writeJSON(w, http.StatusOK, RecordMetricResponse{Message: "metric recorded successfully", MetricID: metric.ID})
}

// RecordMetricRequest is the body of POST /metrics. FileID accepts a number or a numeric string.
type RecordMetricRequest struct {
	Email  string     `json:"email"`
	FileID flexibleID `json:"file_id"`
}

// RecordMetricResponse reports the ID of the recorded access.
type RecordMetricResponse struct {
	Message  string `json:"message"`
	MetricID int    `json:"metricId"`
}

// MetricsResponse lists recorded accesses joined with user and file details.
type MetricsResponse struct {
	Metrics []types.MetricEntry `json:"metrics"`
}
