package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

func validConfig() *Config {
	return &Config{
		Version:       ConfigVersion,
		NothingItemID: "none",
		Items: []ItemDef{
			{ID: "a", Name: "A", Rarity: "red"},
			{ID: "b", Name: "B", Rarity: "blue"},
			{ID: "none", Name: "Nothing", Rarity: "common"},
		},
		Cases: []CaseDef{
			{ID: "ab", Name: "AB", Price: 100, Currency: "gold", Drops: []DropDef{
				{ItemID: "a", Weight: 1},
				{ItemID: "b", Weight: 99},
			}},
		},
	}
}

func TestLoad_EmbeddedDefault(t *testing.T) {
	c, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Len(t, c.Items(), 6)
	assert.Equal(t, "6", c.NothingItemID())

	cases := c.Cases()
	require.Len(t, cases, 2)
	assert.Equal(t, "sharp", cases[0].ID)
	assert.Equal(t, "knife", cases[1].ID)

	sharp, err := c.Case("sharp")
	require.NoError(t, err)
	assert.Equal(t, int64(100), sharp.Price)
	assert.Equal(t, domain.CurrencyGold, sharp.Currency)
	assert.InDelta(t, 80.0, sharp.TotalWeight(), 1e-9)
	assert.Equal(t, "6", sharp.Drops[len(sharp.Drops)-1].Item.ID, "sentinel must be last to absorb the fallback")

	knife, err := c.Case("knife")
	require.NoError(t, err)
	assert.Equal(t, int64(500), knife.Price)
	assert.InDelta(t, 100.0, knife.TotalWeight(), 1e-9)

	legendary, err := c.Item("1")
	require.NoError(t, err)
	assert.Equal(t, domain.RarityLegendary, legendary.Rarity)
	assert.True(t, c.IsNothing(domain.Item{ID: "6"}))
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
		"version": "1.0",
		"nothing_item_id": "n",
		"items": [{"id": "x", "name": "X", "rarity": "legendary"}, {"id": "n", "name": "N", "rarity": "common"}],
		"cases": [{"id": "solo", "name": "Solo", "price": 5, "currency": "gold", "drops": [{"item_id": "x", "weight": 10}, {"item_id": "n", "weight": 0}]}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(context.Background(), path)
	require.NoError(t, err)

	table, err := c.Table("solo")
	require.NoError(t, err)
	item, err := table.Pick(50)
	require.NoError(t, err)
	assert.Equal(t, "n", item.ID, "draw beyond weight falls to the last drop even at zero weight")
}

func TestLoad_SchemaRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": "1.0", "items": []}`), 0o644))

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad version", mutate: func(c *Config) { c.Version = "2.0" }, wantErr: ErrInvalidConfig},
		{name: "no items", mutate: func(c *Config) { c.Items = nil }, wantErr: ErrInvalidConfig},
		{name: "no cases", mutate: func(c *Config) { c.Cases = nil }, wantErr: ErrInvalidConfig},
		{name: "duplicate item", mutate: func(c *Config) { c.Items = append(c.Items, ItemDef{ID: "a", Name: "A2", Rarity: "red"}) }, wantErr: ErrDuplicateID},
		{name: "duplicate case", mutate: func(c *Config) { c.Cases = append(c.Cases, c.Cases[0]) }, wantErr: ErrDuplicateID},
		{name: "bad rarity", mutate: func(c *Config) { c.Items[0].Rarity = "purple" }, wantErr: ErrInvalidConfig},
		{name: "unknown sentinel", mutate: func(c *Config) { c.NothingItemID = "ghost" }, wantErr: domain.ErrUnknownItem},
		{name: "zero price", mutate: func(c *Config) { c.Cases[0].Price = 0 }, wantErr: ErrInvalidConfig},
		{name: "silver currency", mutate: func(c *Config) { c.Cases[0].Currency = "silver" }, wantErr: ErrInvalidConfig},
		{name: "empty drops", mutate: func(c *Config) { c.Cases[0].Drops = nil }, wantErr: ErrInvalidConfig},
		{name: "unknown drop item", mutate: func(c *Config) { c.Cases[0].Drops[0].ItemID = "ghost" }, wantErr: domain.ErrUnknownItem},
		{name: "negative weight", mutate: func(c *Config) { c.Cases[0].Drops[1].Weight = -1 }, wantErr: ErrInvalidConfig},
	}

	l := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := l.Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.ErrorIs(t, l.Validate(nil), ErrInvalidConfig)
}

func TestCatalog_Lookups(t *testing.T) {
	c, err := New(validConfig())
	require.NoError(t, err)

	_, err = c.Case("missing")
	assert.ErrorIs(t, err, domain.ErrUnknownCase)

	_, err = c.Table("missing")
	assert.ErrorIs(t, err, domain.ErrUnknownCase)

	_, err = c.Item("missing")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)

	def, err := c.Case("ab")
	require.NoError(t, err)
	def.Drops[0].Weight = 1000

	again, err := c.Case("ab")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again.Drops[0].Weight, "callers get a copy of the drop list")
}
