package handler

import (
	"net/http"

	"github.com/osse101/CaseSim_Go/internal/harvest"
	"github.com/osse101/CaseSim_Go/internal/logger"
)

// HarvestHandler handles the clicker reward
type HarvestHandler struct {
	svc harvest.Service
}

// NewHarvestHandler creates a new harvest handler
func NewHarvestHandler(svc harvest.Service) *HarvestHandler {
	return &HarvestHandler{svc: svc}
}

// Harvest credits a random silver and gold reward
// @Summary Harvest a reward
// @Tags harvest
// @Produce json
// @Success 200 {object} domain.HarvestReward
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /harvest [post]
func (h *HarvestHandler) Harvest(w http.ResponseWriter, r *http.Request) {
	reward, err := h.svc.Harvest(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgHarvestFailed, err)
		return
	}

	logger.FromContext(r.Context()).Debug("Harvest collected",
		"silver", reward.SilverDelta,
		"gold", reward.GoldDelta)

	respondJSON(w, http.StatusOK, reward)
}
