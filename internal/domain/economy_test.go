package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEconomyState_CloneIsDeep(t *testing.T) {
	orig := EconomyState{
		Silver:    10,
		Gold:      20,
		Inventory: []Item{{ID: "1", Name: "Gold Karambit", Rarity: RarityLegendary}},
	}

	clone := orig.Clone()
	clone.Inventory[0].Name = "changed"
	clone.Inventory = append(clone.Inventory, Item{ID: "2"})

	assert.Equal(t, "Gold Karambit", orig.Inventory[0].Name)
	assert.Len(t, orig.Inventory, 1)
}

func TestEconomyState_CloneNilInventory(t *testing.T) {
	clone := EconomyState{Silver: 1}.Clone()
	assert.NotNil(t, clone.Inventory)
	assert.Empty(t, clone.Inventory)
}

func TestEconomyState_Balance(t *testing.T) {
	s := EconomyState{Silver: 5, Gold: 7}
	assert.Equal(t, int64(5), s.Balance(CurrencySilver))
	assert.Equal(t, int64(7), s.Balance(CurrencyGold))
	assert.Equal(t, Balances{Silver: 5, Gold: 7}, s.Balances())
}

func TestEconomyState_Equal(t *testing.T) {
	a := EconomyState{Silver: 1, Gold: 2, Inventory: []Item{}}
	b := EconomyState{Silver: 1, Gold: 2}
	assert.True(t, a.Equal(b), "nil and empty inventories are equal")

	b.Inventory = []Item{{ID: "x"}}
	assert.False(t, a.Equal(b))
}

func TestRarity(t *testing.T) {
	tests := []struct {
		rarity Rarity
		valid  bool
		tier   int
	}{
		{RarityCommon, true, 0},
		{RarityBlue, true, 1},
		{RarityRed, true, 2},
		{RarityLegendary, true, 3},
		{Rarity("gold"), false, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.rarity), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.rarity.IsValid())
			assert.Equal(t, tt.tier, tt.rarity.Tier())
		})
	}
}

func TestCaseDefinition_TotalWeight(t *testing.T) {
	def := CaseDefinition{Drops: []Drop{{Weight: 4}, {Weight: 5}, {Weight: 7}, {Weight: 64}}}
	assert.InDelta(t, 80.0, def.TotalWeight(), 1e-9)
}

func TestEconomyState_Conceal(t *testing.T) {
	a := Item{ID: "a"}
	b := Item{ID: "b"}
	c := Item{ID: "c"}
	state := EconomyState{Silver: 100, Gold: 50, Inventory: []Item{a, b, c}}

	tests := []struct {
		name   string
		hidden []Concealment
		want   EconomyState
	}{
		{"nothing hidden", nil, state},
		{"one item", []Concealment{{Items: []int{1}}}, EconomyState{Silver: 100, Gold: 50, Inventory: []Item{a, c}}},
		{"credits", []Concealment{{Silver: 40, Gold: 10}}, EconomyState{Silver: 60, Gold: 40, Inventory: []Item{a, b, c}}},
		{
			"several",
			[]Concealment{{Items: []int{0}}, {Silver: 10, Items: []int{2}}},
			EconomyState{Silver: 90, Gold: 50, Inventory: []Item{b}},
		},
		{"clamped at zero", []Concealment{{Silver: 500, Gold: 51}}, EconomyState{Inventory: []Item{a, b, c}}},
		{"out of range position", []Concealment{{Items: []int{9}}}, state},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := state.Conceal(tt.hidden...)
			assert.True(t, tt.want.Equal(got), "got %+v", got)
		})
	}
	assert.Len(t, state.Inventory, 3, "receiver is not modified")
}

func TestConcealment_IsZero(t *testing.T) {
	assert.True(t, Concealment{}.IsZero())
	assert.True(t, Concealment{Items: []int{}}.IsZero())
	assert.False(t, Concealment{Gold: 1}.IsZero())
	assert.False(t, Concealment{Items: []int{0}}.IsZero())
}
