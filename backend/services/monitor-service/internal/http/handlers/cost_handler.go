package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/service"
)

// CostHandler serves the cost endpoints.
type CostHandler struct {
	service *service.BillingService
	logger  *zap.Logger
	now     func() time.Time
}

// NewCostHandler builds handler.
func NewCostHandler(svc *service.BillingService, logger *zap.Logger) *CostHandler {
	return &CostHandler{
		service: svc,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type costRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Range     string `json:"range"`
}

type costResponse struct {
	TotalEnergy   float64             `json:"totalEnergy"`
	TotalCost     float64             `json:"totalCost"`
	SlabBreakdown []models.SlabCharge `json:"slabBreakdown"`
	ReadingsCount int                 `json:"readingsCount"`
}

type realtimeResponse struct {
	Power       float64   `json:"power"`
	CostPerHour float64   `json:"costPerHour"`
	Timestamp   time.Time `json:"timestamp"`
}

type summaryResponse struct {
	costResponse
	Latest      *models.Reading `json:"latest"`
	CostPerHour float64         `json:"costPerHour"`
}

func newCostResponse(result models.BillingResult) costResponse {
	breakdown := result.Breakdown
	if breakdown == nil {
		breakdown = []models.SlabCharge{}
	}
	return costResponse{
		TotalEnergy:   round(result.TotalEnergy, 4),
		TotalCost:     round(result.TotalCost, 2),
		SlabBreakdown: breakdown,
		ReadingsCount: result.ReadingsCount,
	}
}

// Calculate handles POST /api/cost/calculate.
func (h *CostHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req costRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	start, end, err := h.window(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.CalculateCost(r.Context(), start, end)
	if err != nil {
		h.writeServiceError(w, err, "cost calculation failed")
		return
	}

	writeJSON(w, http.StatusOK, newCostResponse(result))
}

// Realtime handles GET /api/cost/realtime.
func (h *CostHandler) Realtime(w http.ResponseWriter, r *http.Request) {
	estimate, err := h.service.Realtime(r.Context())
	if errors.Is(err, service.ErrNoReadings) {
		writeError(w, http.StatusNotFound, "no data")
		return
	}
	if err != nil {
		h.writeServiceError(w, err, "realtime estimate failed")
		return
	}

	writeJSON(w, http.StatusOK, realtimeResponse{
		Power:       estimate.Reading.Power,
		CostPerHour: round(estimate.CostPerHour, 2),
		Timestamp:   estimate.Reading.Timestamp,
	})
}

// Summary handles GET /api/summary.
func (h *CostHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summarize(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "summary failed")
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		costResponse: newCostResponse(summary.Bill),
		Latest:       summary.Latest,
		CostPerHour:  round(summary.CostPerHour, 2),
	})
}

func (h *CostHandler) window(req costRequest) (time.Time, time.Time, error) {
	if req.StartDate == "" && req.EndDate == "" {
		if req.Range == "" {
			return time.Time{}, time.Time{}, errors.New("startDate and endDate or range required")
		}
		return service.ResolvePreset(req.Range, h.now())
	}
	if req.StartDate == "" || req.EndDate == "" {
		return time.Time{}, time.Time{}, errors.New("both startDate and endDate required")
	}

	start, err := time.Parse(time.RFC3339Nano, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("startDate must be an ISO-8601 timestamp")
	}
	end, err := time.Parse(time.RFC3339Nano, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("endDate must be an ISO-8601 timestamp")
	}
	return start, end, nil
}

func (h *CostHandler) writeServiceError(w http.ResponseWriter, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
		writeError(w, status, message)
		return
	}
	writeError(w, status, err.Error())
}
