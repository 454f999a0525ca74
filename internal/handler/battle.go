package handler

import (
	"net/http"
	"time"

	"github.com/osse101/CaseSim_Go/internal/duel"
	"github.com/osse101/CaseSim_Go/internal/logger"
)

// PendingBattleResponse acknowledges a battle whose result is not yet
// disclosed
type PendingBattleResponse struct {
	ID       string    `json:"id"`
	RevealAt time.Time `json:"reveal_at"`
	Message  string    `json:"message"`
}

// BattleHandler handles coin-flip battles
type BattleHandler struct {
	svc duel.Service
}

// NewBattleHandler creates a new battle handler
func NewBattleHandler(svc duel.Service) *BattleHandler {
	return &BattleHandler{svc: svc}
}

// Battle starts a coin-flip battle
// @Summary Start a battle
// @Description Flips a fair coin. Both results pay silver and a win also pays gold. With wait=true the response is held until the reveal.
// @Tags battle
// @Produce json
// @Param wait query bool false "Block until the outcome is revealed"
// @Success 200 {object} domain.BattleOutcome
// @Success 202 {object} PendingBattleResponse
// @Failure 409 {object} ErrorResponse "A battle is already in progress"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /battle [post]
func (h *BattleHandler) Battle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	wait, ok := parseWait(w, r)
	if !ok {
		return
	}

	pending, err := h.svc.ResolveBattle(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgBattleFailed, err)
		return
	}

	if wait {
		outcome, err := pending.Wait(r.Context())
		if err != nil {
			log.Info(LogMsgWaitInterrupted, "battle_id", pending.ID(), "error", err)
			return
		}
		respondJSON(w, http.StatusOK, outcome)
		return
	}

	respondJSON(w, http.StatusAccepted, PendingBattleResponse{
		ID:       pending.ID(),
		RevealAt: pending.RevealAt(),
		Message:  MsgRevealPending,
	})
}
