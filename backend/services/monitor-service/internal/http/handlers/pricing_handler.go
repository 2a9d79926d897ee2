package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/billing"
	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/service"
)

type slabsPayload struct {
	Slabs []models.PricingSlab `json:"slabs"`
}

type validationErrorResponse struct {
	Error string `json:"error"`
	Index *int   `json:"index,omitempty"`
}

// NewPricingSlabsHandler returns GET /api/pricing-slabs handler.
func NewPricingSlabsHandler(svc *service.PricingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, slabsPayload{Slabs: svc.Current()})
	}
}

// NewPricingUpdateHandler returns POST /api/pricing/update handler.
func NewPricingUpdateHandler(svc *service.PricingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req slabsPayload
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		schedule, err := svc.Update(r.Context(), req.Slabs)
		if err != nil {
			var verr *billing.ValidationError
			if errors.As(err, &verr) {
				resp := validationErrorResponse{Error: err.Error()}
				if verr.Index >= 0 {
					idx := verr.Index
					resp.Index = &idx
				}
				writeJSON(w, http.StatusBadRequest, resp)
				return
			}
			logger.Error("failed to update pricing schedule", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update pricing schedule")
			return
		}

		writeJSON(w, http.StatusOK, slabsPayload{Slabs: schedule})
	}
}
