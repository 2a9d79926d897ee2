package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/service"
)

// ReadingsHandler serves the reading ingestion and history endpoints.
type ReadingsHandler struct {
	service *service.ReadingsService
	logger  *zap.Logger
}

// NewReadingsHandler builds handler.
func NewReadingsHandler(svc *service.ReadingsService, logger *zap.Logger) *ReadingsHandler {
	return &ReadingsHandler{
		service: svc,
		logger:  logger,
	}
}

// Create handles POST /api/readings.
func (h *ReadingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ReadingInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	reading, err := h.service.Record(r.Context(), service.SourceHTTP, req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("failed to record reading", zap.Error(err))
			writeError(w, status, "failed to record reading")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, reading)
}

// Latest handles GET /api/readings/latest.
func (h *ReadingsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	reading, ok := h.service.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no data")
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

// List handles GET /api/readings?limit=N.
func (h *ReadingsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}
	writeJSON(w, http.StatusOK, h.service.Recent(limit))
}
