package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/lootbox"
)

// URLParamCaseID is the chi route parameter holding the case id
const URLParamCaseID = "caseID"

// CaseResponse is a case with the effective odds of each drop
type CaseResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Price          int64              `json:"price"`
	PriceFormatted string             `json:"price_formatted"`
	Currency       domain.Currency    `json:"currency"`
	Drops          []lootbox.DropOdds `json:"drops"`
}

// CaseListResponse lists every purchasable case
type CaseListResponse struct {
	Cases []CaseResponse `json:"cases"`
}

// PendingOpeningResponse acknowledges an opening whose item is not yet
// disclosed. The price has already been paid.
type PendingOpeningResponse struct {
	ID       string          `json:"id"`
	CaseID   string          `json:"case_id"`
	Price    int64           `json:"price"`
	Balances domain.Balances `json:"balances"`
	RevealAt time.Time       `json:"reveal_at"`
	Message  string          `json:"message"`
}

// CaseHandler handles case browsing and opening
type CaseHandler struct {
	svc lootbox.Service
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(svc lootbox.Service) *CaseHandler {
	return &CaseHandler{svc: svc}
}

// ListCases returns all cases with odds
// @Summary List cases
// @Tags cases
// @Produce json
// @Success 200 {object} CaseListResponse
// @Failure 500 {object} ErrorResponse
// @Router /cases [get]
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	defs := h.svc.Cases()
	out := make([]CaseResponse, 0, len(defs))
	for _, def := range defs {
		resp, err := h.caseResponse(def)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetCaseFailed, err)
			return
		}
		out = append(out, resp)
	}
	respondJSON(w, http.StatusOK, CaseListResponse{Cases: out})
}

// GetCase returns one case with odds
// @Summary Get a case
// @Tags cases
// @Produce json
// @Param caseID path string true "Case id"
// @Success 200 {object} CaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cases/{caseID} [get]
func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}

	def, err := h.svc.GetCase(caseID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCaseFailed, err)
		return
	}
	resp, err := h.caseResponse(def)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCaseFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// OpenCase buys and opens a case
// @Summary Open a case
// @Description Deducts the price and draws an item. With wait=true the response is held until the reveal and carries the outcome; otherwise it returns 202 and the outcome arrives as a case.revealed event.
// @Tags cases
// @Produce json
// @Param caseID path string true "Case id"
// @Param wait query bool false "Block until the outcome is revealed"
// @Success 200 {object} domain.CaseOpening
// @Success 202 {object} PendingOpeningResponse
// @Failure 400 {object} ErrorResponse "Not enough gold"
// @Failure 404 {object} ErrorResponse "Unknown case"
// @Failure 409 {object} ErrorResponse "An opening is already in progress"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /cases/{caseID}/open [post]
func (h *CaseHandler) OpenCase(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}
	wait, ok := parseWait(w, r)
	if !ok {
		return
	}

	pending, err := h.svc.OpenCase(r.Context(), caseID)
	if err != nil {
		respondServiceError(w, r, ErrMsgOpenCaseFailed, err)
		return
	}

	if wait {
		opening, err := pending.Wait(r.Context())
		if err != nil {
			log.Info(LogMsgWaitInterrupted, "opening_id", pending.ID(), "error", err)
			return
		}
		respondJSON(w, http.StatusOK, opening)
		return
	}

	o := pending.Result()
	respondJSON(w, http.StatusAccepted, PendingOpeningResponse{
		ID:       o.ID,
		CaseID:   o.CaseID,
		Price:    o.Price,
		Balances: o.Balances,
		RevealAt: o.RevealAt,
		Message:  MsgRevealPending,
	})
}

func (h *CaseHandler) caseID(w http.ResponseWriter, r *http.Request) (string, bool) {
	caseID := chi.URLParam(r, URLParamCaseID)
	if err := GetValidator().ValidateVar(caseID, "required,caseid"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCaseID)
		return "", false
	}
	return caseID, true
}

func (h *CaseHandler) caseResponse(def domain.CaseDefinition) (CaseResponse, error) {
	odds, err := h.svc.Odds(def.ID)
	if err != nil {
		return CaseResponse{}, err
	}
	return CaseResponse{
		ID:             def.ID,
		Name:           def.Name,
		Price:          def.Price,
		PriceFormatted: formatAmount(def.Price),
		Currency:       def.Currency,
		Drops:          odds,
	}, nil
}
