package economy

import (
	"fmt"
	"math"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

// The functions in this file mutate a state value in place and never touch
// storage. Workflows compose them inside Store.Apply.

func balanceOf(state *domain.EconomyState, c domain.Currency) (*int64, error) {
	switch c {
	case domain.CurrencySilver:
		return &state.Silver, nil
	case domain.CurrencyGold:
		return &state.Gold, nil
	}
	return nil, fmt.Errorf(ErrMsgUnknownCurrency, domain.ErrInvalidInput, c)
}

// Credit adds amount to a balance
func Credit(state *domain.EconomyState, c domain.Currency, amount int64) error {
	bal, err := balanceOf(state, c)
	if err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf(ErrMsgNegativeAmountFmt, domain.ErrInvalidAmount, c, amount)
	}
	if *bal > math.MaxInt64-amount {
		return fmt.Errorf(ErrMsgOverflowFmt, domain.ErrInvalidAmount, c, amount, *bal)
	}
	*bal += amount
	return nil
}

// Debit subtracts amount from a balance, failing without change when the
// balance is too small
func Debit(state *domain.EconomyState, c domain.Currency, amount int64) error {
	bal, err := balanceOf(state, c)
	if err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf(ErrMsgNegativeAmountFmt, domain.ErrInvalidAmount, c, amount)
	}
	if amount > *bal {
		return fmt.Errorf(ErrMsgInsufficientFmt, domain.ErrInsufficientFunds, c, *bal, amount)
	}
	*bal -= amount
	return nil
}

// AppendItem adds an item to the end of the inventory
func AppendItem(state *domain.EconomyState, item domain.Item) {
	state.Inventory = append(state.Inventory, item)
}
