// Package catalog holds the immutable item and case definitions.
package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/CaseSim_Go/configs"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/selector"
)

// Catalog is read-only after construction and safe for concurrent use
type Catalog struct {
	items     map[string]domain.Item
	itemOrder []string
	cases     map[string]*compiledCase
	caseOrder []string
	nothingID string
}

type compiledCase struct {
	def   domain.CaseDefinition
	table *selector.Table[domain.Item]
}

// New builds a catalog from a validated config
func New(cfg *Config) (*Catalog, error) {
	if err := NewLoader().Validate(cfg); err != nil {
		return nil, err
	}

	c := &Catalog{
		items:     make(map[string]domain.Item, len(cfg.Items)),
		cases:     make(map[string]*compiledCase, len(cfg.Cases)),
		nothingID: cfg.NothingItemID,
	}

	for _, it := range cfg.Items {
		c.items[it.ID] = domain.Item{
			ID:         it.ID,
			Name:       it.Name,
			Rarity:     domain.Rarity(it.Rarity),
			Collection: it.Collection,
		}
		c.itemOrder = append(c.itemOrder, it.ID)
	}

	for _, cd := range cfg.Cases {
		def := domain.CaseDefinition{
			ID:       cd.ID,
			Name:     cd.Name,
			Price:    cd.Price,
			Currency: domain.Currency(cd.Currency),
			Drops:    make([]domain.Drop, 0, len(cd.Drops)),
		}
		entries := make([]selector.Entry[domain.Item], 0, len(cd.Drops))
		for _, d := range cd.Drops {
			item := c.items[d.ItemID]
			def.Drops = append(def.Drops, domain.Drop{Item: item, Weight: d.Weight})
			entries = append(entries, selector.Entry[domain.Item]{Value: item, Weight: d.Weight})
		}

		table, err := selector.NewTable(entries)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", cd.ID, err)
		}
		c.cases[cd.ID] = &compiledCase{def: def, table: table}
		c.caseOrder = append(c.caseOrder, cd.ID)
	}

	return c, nil
}

// Load reads, validates and builds a catalog. An empty path selects the
// embedded default.
func Load(ctx context.Context, path string) (*Catalog, error) {
	l := NewLoader()

	var (
		cfg *Config
		err error
	)
	if path == "" {
		var data []byte
		data, err = configs.FS.ReadFile(configs.CatalogPath)
		if err == nil {
			cfg, err = l.LoadBytes(data)
		}
	} else {
		cfg, err = l.Load(path)
	}
	if err != nil {
		return nil, err
	}

	c, err := New(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	for _, id := range c.caseOrder {
		cc := c.cases[id]
		total := cc.table.TotalWeight()
		switch {
		case total < selector.DrawScale:
			log.Info(LogMsgCaseUnderWeight, "case", id, "total_weight", total,
				"fallback_item", cc.def.Drops[len(cc.def.Drops)-1].Item.ID)
		case total > selector.DrawScale:
			log.Warn(LogMsgCaseOverWeight, "case", id, "total_weight", total)
		}
	}
	log.Info(LogMsgCatalogLoaded, "items", len(c.items), "cases", len(c.cases), "source", sourceName(path))

	return c, nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// Item looks up an item by id
func (c *Catalog) Item(id string) (domain.Item, error) {
	it, ok := c.items[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrUnknownItem, id)
	}
	return it, nil
}

// Items returns all items in definition order
func (c *Catalog) Items() []domain.Item {
	out := make([]domain.Item, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		out = append(out, c.items[id])
	}
	return out
}

// Case returns a copy of a case definition
func (c *Catalog) Case(id string) (domain.CaseDefinition, error) {
	cc, ok := c.cases[id]
	if !ok {
		return domain.CaseDefinition{}, fmt.Errorf("%w: %s", domain.ErrUnknownCase, id)
	}
	def := cc.def
	def.Drops = slices.Clone(cc.def.Drops)
	return def, nil
}

// Cases returns all case definitions in definition order
func (c *Catalog) Cases() []domain.CaseDefinition {
	out := make([]domain.CaseDefinition, 0, len(c.caseOrder))
	for _, id := range c.caseOrder {
		def, _ := c.Case(id)
		out = append(out, def)
	}
	return out
}

// Table returns the precomputed selection table for a case
func (c *Catalog) Table(id string) (*selector.Table[domain.Item], error) {
	cc, ok := c.cases[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCase, id)
	}
	return cc.table, nil
}

// NothingItemID is the id of the empty-outcome sentinel
func (c *Catalog) NothingItemID() string {
	return c.nothingID
}

// IsNothing reports whether item is the empty-outcome sentinel
func (c *Catalog) IsNothing(item domain.Item) bool {
	return item.ID == c.nothingID
}
