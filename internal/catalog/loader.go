package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/osse101/CaseSim_Go/configs"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/validation"
)

// Sentinel errors for catalog loading
var (
	ErrInvalidConfig = errors.New("invalid catalog configuration")
	ErrDuplicateID   = errors.New("duplicate id")
)

// Config is the on-disk catalog representation
type Config struct {
	Version       string    `json:"version"`
	NothingItemID string    `json:"nothing_item_id"`
	Items         []ItemDef `json:"items"`
	Cases         []CaseDef `json:"cases"`
}

// ItemDef is one item entry
type ItemDef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rarity     string `json:"rarity"`
	Collection string `json:"collection,omitempty"`
}

// CaseDef is one case entry; drops reference items by id
type CaseDef struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	Currency string    `json:"currency"`
	Drops    []DropDef `json:"drops"`
}

// DropDef is a weighted item reference
type DropDef struct {
	ItemID string  `json:"item_id"`
	Weight float64 `json:"weight"`
}

// Loader reads and validates catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	LoadBytes(data []byte) (*Config, error)
	Validate(cfg *Config) error
}

type loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a loader that validates against the embedded schema
func NewLoader() Loader {
	return &loader{
		schemaValidator: validation.NewFSSchemaValidator(configs.FS),
	}
}

// Load reads a catalog file from disk
func (l *loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadFileFailed, err)
	}
	cfg, err := l.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadBytes validates raw JSON against the schema and decodes it
func (l *loader) LoadBytes(data []byte) (*Config, error) {
	if err := l.schemaValidator.ValidateBytes(data, configs.CatalogSchemaPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseFailed, err)
	}
	return &cfg, nil
}

// Validate checks the rules the schema cannot express: id uniqueness,
// drop references and the sentinel item
func (l *loader) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if cfg.Version != ConfigVersion {
		return fmt.Errorf(ErrFmtVersion, ErrInvalidConfig, cfg.Version)
	}
	if len(cfg.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItems)
	}
	if len(cfg.Cases) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoCases)
	}

	items := make(map[string]bool, len(cfg.Items))
	for i, it := range cfg.Items {
		if it.ID == "" {
			return fmt.Errorf(ErrFmtEmptyItemID, ErrInvalidConfig, i)
		}
		if items[it.ID] {
			return fmt.Errorf(ErrFmtDuplicateItem, ErrDuplicateID, it.ID)
		}
		items[it.ID] = true

		if !domain.Rarity(it.Rarity).IsValid() {
			return fmt.Errorf(ErrFmtInvalidRarity, ErrInvalidConfig, it.ID, it.Rarity)
		}
	}

	if !items[cfg.NothingItemID] {
		return fmt.Errorf(ErrFmtUnknownSentinel, domain.ErrUnknownItem, cfg.NothingItemID)
	}

	cases := make(map[string]bool, len(cfg.Cases))
	for _, c := range cfg.Cases {
		if err := validateCase(c, items, cases); err != nil {
			return err
		}
	}
	return nil
}

func validateCase(c CaseDef, items, seen map[string]bool) error {
	if seen[c.ID] {
		return fmt.Errorf(ErrFmtDuplicateCase, ErrDuplicateID, c.ID)
	}
	seen[c.ID] = true

	if c.Price <= 0 {
		return fmt.Errorf(ErrFmtNonPositivePrice, ErrInvalidConfig, c.ID, c.Price)
	}
	if domain.Currency(c.Currency) != domain.CurrencyGold {
		return fmt.Errorf(ErrFmtBadCurrency, ErrInvalidConfig, c.ID, c.Currency)
	}
	if len(c.Drops) == 0 {
		return fmt.Errorf(ErrFmtEmptyDrops, ErrInvalidConfig, c.ID)
	}

	for i, d := range c.Drops {
		if !items[d.ItemID] {
			return fmt.Errorf(ErrFmtUnknownDropItem, domain.ErrUnknownItem, c.ID, i, d.ItemID)
		}
		if d.Weight < 0 || math.IsNaN(d.Weight) || math.IsInf(d.Weight, 0) {
			return fmt.Errorf(ErrFmtNegativeWeight, ErrInvalidConfig, c.ID, i, d.Weight)
		}
	}
	return nil
}
