package domain

import "slices"

// Balances is a snapshot of both currencies
type Balances struct {
	Silver int64 `json:"silver"`
	Gold   int64 `json:"gold"`
}

// EconomyState holds balances and the ordered inventory.
// Inventory order is acquisition order; duplicates are allowed.
type EconomyState struct {
	Silver    int64  `json:"silver"`
	Gold      int64  `json:"gold"`
	Inventory []Item `json:"inventory"`
}

// DefaultEconomyState returns the state used when nothing is persisted yet
func DefaultEconomyState() EconomyState {
	return EconomyState{
		Silver:    DefaultSilver,
		Gold:      DefaultGold,
		Inventory: []Item{},
	}
}

// Clone returns a deep copy so callers never share the inventory slice
func (s EconomyState) Clone() EconomyState {
	inv := slices.Clone(s.Inventory)
	if inv == nil {
		inv = []Item{}
	}
	return EconomyState{
		Silver:    s.Silver,
		Gold:      s.Gold,
		Inventory: inv,
	}
}

// Balances returns the current balances
func (s EconomyState) Balances() Balances {
	return Balances{Silver: s.Silver, Gold: s.Gold}
}

// Balance returns the balance for a single currency
func (s EconomyState) Balance(c Currency) int64 {
	if c == CurrencyGold {
		return s.Gold
	}
	return s.Silver
}

// Equal compares balances and inventory element by element
func (s EconomyState) Equal(other EconomyState) bool {
	return s.Silver == other.Silver &&
		s.Gold == other.Gold &&
		slices.Equal(s.Inventory, other.Inventory)
}

// Concealment is the part of a committed change the player has not been
// shown yet: credited amounts and the inventory positions of new items
type Concealment struct {
	Silver int64
	Gold   int64
	Items  []int
}

// IsZero reports whether nothing is concealed
func (c Concealment) IsZero() bool {
	return c.Silver == 0 && c.Gold == 0 && len(c.Items) == 0
}

// Conceal returns a copy of s without the hidden parts. Balances do not go
// below zero, since a later debit may already have spent a hidden credit.
func (s EconomyState) Conceal(hidden ...Concealment) EconomyState {
	out := s.Clone()
	skip := make(map[int]bool)
	for _, c := range hidden {
		out.Silver -= c.Silver
		out.Gold -= c.Gold
		for _, i := range c.Items {
			skip[i] = true
		}
	}
	out.Silver = max(out.Silver, 0)
	out.Gold = max(out.Gold, 0)

	if len(skip) > 0 {
		inv := make([]Item, 0, len(out.Inventory))
		for i, item := range out.Inventory {
			if !skip[i] {
				inv = append(inv, item)
			}
		}
		out.Inventory = inv
	}
	return out
}
