package lootbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

var (
	itemA   = domain.Item{ID: "a", Name: "A", Rarity: domain.RarityRed}
	itemB   = domain.Item{ID: "b", Name: "B", Rarity: domain.RarityBlue}
	nothing = domain.Item{ID: "none", Name: "Nothing", Rarity: domain.RarityCommon}
)

func abCase() domain.CaseDefinition {
	return domain.CaseDefinition{
		ID:       "ab",
		Name:     "AB Case",
		Price:    100,
		Currency: domain.CurrencyGold,
		Drops: []domain.Drop{
			{Item: itemA, Weight: 1},
			{Item: itemB, Weight: 99},
		},
	}
}

func isNothing(it domain.Item) bool { return it.ID == nothing.ID }

func TestResolve_WeightedScenario(t *testing.T) {
	tests := []struct {
		name string
		draw float64
		want domain.Item
	}{
		{"low draw selects A", 0.5, itemA},
		{"boundary draw selects A", 1.0, itemA},
		{"mid draw selects B", 50, itemB},
		{"top draw selects B", 99.99, itemB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := domain.EconomyState{Silver: 5000, Gold: 1000, Inventory: []domain.Item{}}

			next, opening, err := Resolve(abCase(), state, tt.draw, isNothing)
			require.NoError(t, err)

			assert.Equal(t, tt.want, opening.Item)
			assert.Equal(t, int64(900), next.Gold)
			assert.Equal(t, int64(5000), next.Silver)
			assert.Equal(t, []domain.Item{tt.want}, next.Inventory)
			assert.Equal(t, 1, opening.InventorySize)
			assert.Equal(t, domain.Balances{Silver: 5000, Gold: 900}, opening.Balances)
			assert.False(t, opening.IsNothing)

			// The input is not mutated
			assert.Equal(t, int64(1000), state.Gold)
			assert.Empty(t, state.Inventory)
		})
	}
}

func TestResolve_InsufficientFunds(t *testing.T) {
	state := domain.EconomyState{Silver: 99999, Gold: 99, Inventory: []domain.Item{itemA}}

	next, _, err := Resolve(abCase(), state, 10, isNothing)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, state.Equal(next))
}

func TestResolve_ExactBalance(t *testing.T) {
	state := domain.EconomyState{Gold: 100, Inventory: []domain.Item{}}

	next, _, err := Resolve(abCase(), state, 10, isNothing)
	require.NoError(t, err)
	assert.Equal(t, int64(0), next.Gold)
}

func TestResolve_SentinelLeavesInventory(t *testing.T) {
	def := domain.CaseDefinition{
		ID:       "mostly-nothing",
		Price:    100,
		Currency: domain.CurrencyGold,
		Drops: []domain.Drop{
			{Item: itemA, Weight: 10},
			{Item: nothing, Weight: 10},
		},
	}
	state := domain.EconomyState{Gold: 1000, Inventory: []domain.Item{itemB}}

	// 50 is beyond the total weight of 20, so the last drop absorbs it
	next, opening, err := Resolve(def, state, 50, isNothing)
	require.NoError(t, err)

	assert.True(t, opening.IsNothing)
	assert.Equal(t, nothing, opening.Item)
	assert.Equal(t, int64(900), next.Gold)
	assert.Equal(t, []domain.Item{itemB}, next.Inventory)
}

func TestResolve_RejectsNonGoldCase(t *testing.T) {
	def := abCase()
	def.Currency = domain.CurrencySilver

	_, _, err := Resolve(def, domain.DefaultEconomyState(), 10, isNothing)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_EmptyCase(t *testing.T) {
	def := abCase()
	def.Drops = nil

	state := domain.DefaultEconomyState()
	next, _, err := Resolve(def, state, 10, isNothing)
	require.Error(t, err)
	assert.True(t, state.Equal(next))
}
