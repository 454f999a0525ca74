package handler

import (
	"net/http"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

// ActivityReporter reports whether an action is awaiting its reveal
type ActivityReporter interface {
	InProgress() bool
}

// IdentityReader exposes the logged-in identity
type IdentityReader interface {
	Current() (domain.Identity, bool)
}

// InFlightStatus lists which actions are awaiting a reveal
type InFlightStatus struct {
	OpenCase bool `json:"open_case"`
	Battle   bool `json:"battle"`
}

// StateResponse is the full view a front end renders from
type StateResponse struct {
	Balances  domain.Balances   `json:"balances"`
	Formatted FormattedBalances `json:"formatted"`
	Inventory InventoryResponse `json:"inventory"`
	InFlight  InFlightStatus    `json:"in_flight"`
	User      *domain.Identity  `json:"user,omitempty"`
}

// StateHandler serves the aggregated state view
type StateHandler struct {
	store   EconomyReader
	cases   ActivityReporter
	battles ActivityReporter
	users   IdentityReader
}

// NewStateHandler creates a new state handler. users may be nil.
func NewStateHandler(store EconomyReader, cases, battles ActivityReporter, users IdentityReader) *StateHandler {
	return &StateHandler{
		store:   store,
		cases:   cases,
		battles: battles,
		users:   users,
	}
}

// GetState returns balances, inventory and in-flight flags
// @Summary Get simulator state
// @Description Balances (raw and formatted), inventory, in-flight flags and the current user. Outcomes awaiting their reveal are not included.
// @Tags state
// @Produce json
// @Success 200 {object} StateResponse
// @Router /state [get]
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Disclosed()
	balances := snap.Balances()

	resp := StateResponse{
		Balances:  balances,
		Formatted: formatBalances(balances),
		Inventory: buildInventory(snap.Inventory),
		InFlight: InFlightStatus{
			OpenCase: h.cases.InProgress(),
			Battle:   h.battles.InProgress(),
		},
	}
	if h.users != nil {
		if id, ok := h.users.Current(); ok {
			resp.User = &id
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
