package lootbox

import (
	"fmt"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/economy"
	"github.com/osse101/CaseSim_Go/internal/selector"
)

// Resolve is the pure case-opening transition. It charges the price, picks
// a drop at draw and appends it to the inventory unless isNothing reports
// the sentinel. On error state is returned unchanged.
func Resolve(def domain.CaseDefinition, state domain.EconomyState, draw float64, isNothing func(domain.Item) bool) (domain.EconomyState, domain.CaseOpening, error) {
	entries := make([]selector.Entry[domain.Item], 0, len(def.Drops))
	for _, d := range def.Drops {
		entries = append(entries, selector.Entry[domain.Item]{Value: d.Item, Weight: d.Weight})
	}
	table, err := selector.NewTable(entries)
	if err != nil {
		return state, domain.CaseOpening{}, fmt.Errorf(ErrMsgSelectFailed, def.ID, err)
	}

	next := state.Clone()
	opening, err := apply(&next, def, table, draw, isNothing)
	if err != nil {
		return state, domain.CaseOpening{}, err
	}
	return next, opening, nil
}

// apply mutates state in place. Callers hand it a scratch copy.
func apply(state *domain.EconomyState, def domain.CaseDefinition, table *selector.Table[domain.Item], draw float64, isNothing func(domain.Item) bool) (domain.CaseOpening, error) {
	if def.Currency != domain.CurrencyGold {
		return domain.CaseOpening{}, fmt.Errorf(ErrMsgCaseNotPurchasable, domain.ErrInvalidInput, def.ID, def.Currency)
	}
	if err := economy.Debit(state, domain.CurrencyGold, def.Price); err != nil {
		return domain.CaseOpening{}, err
	}

	item, err := table.Pick(draw)
	if err != nil {
		return domain.CaseOpening{}, fmt.Errorf(ErrMsgSelectFailed, def.ID, err)
	}

	nothing := isNothing != nil && isNothing(item)
	if !nothing {
		economy.AppendItem(state, item)
	}

	return domain.CaseOpening{
		CaseID:        def.ID,
		CaseName:      def.Name,
		Price:         def.Price,
		Currency:      def.Currency,
		Item:          item,
		Rarity:        item.Rarity,
		IsNothing:     nothing,
		Draw:          draw,
		Balances:      state.Balances(),
		InventorySize: len(state.Inventory),
	}, nil
}
