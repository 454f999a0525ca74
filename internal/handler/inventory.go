package handler

import (
	"net/http"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

// EconomyReader exposes the economy as the player has been shown it:
// outcomes awaiting their reveal are left out
type EconomyReader interface {
	Disclosed() domain.EconomyState
}

// InventoryEntry is one owned item in acquisition order
type InventoryEntry struct {
	Position    int         `json:"position"`
	Item        domain.Item `json:"item"`
	RarityLabel string      `json:"rarity_label"`
}

// InventoryResponse lists owned items
type InventoryResponse struct {
	Items []InventoryEntry `json:"items"`
	Count int              `json:"count"`
}

// InventoryHandler serves the owned items
type InventoryHandler struct {
	store EconomyReader
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(store EconomyReader) *InventoryHandler {
	return &InventoryHandler{store: store}
}

// GetInventory returns the inventory
// @Summary Get inventory
// @Description Owned items in the order they were acquired. Duplicates are listed separately. Drops awaiting their reveal are not listed.
// @Tags inventory
// @Produce json
// @Success 200 {object} InventoryResponse
// @Router /inventory [get]
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, buildInventory(h.store.Disclosed().Inventory))
}

func buildInventory(items []domain.Item) InventoryResponse {
	entries := make([]InventoryEntry, len(items))
	for i, item := range items {
		entries[i] = InventoryEntry{
			Position:    i + 1,
			Item:        item,
			RarityLabel: rarityLabel(item.Rarity),
		}
	}
	return InventoryResponse{Items: entries, Count: len(entries)}
}
