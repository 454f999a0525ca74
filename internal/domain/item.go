package domain

// Rarity is a coarse tier label used for classification and display.
// It never takes part in probability computation.
type Rarity string

const (
	RarityLegendary Rarity = "legendary"
	RarityRed       Rarity = "red"
	RarityBlue      Rarity = "blue"
	RarityCommon    Rarity = "common"
)

// IsValid reports whether r is a known rarity
func (r Rarity) IsValid() bool {
	switch r {
	case RarityLegendary, RarityRed, RarityBlue, RarityCommon:
		return true
	}
	return false
}

// Tier orders rarities from common (0) to legendary (3), -1 for unknown values
func (r Rarity) Tier() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityBlue:
		return 1
	case RarityRed:
		return 2
	case RarityLegendary:
		return 3
	}
	return -1
}

// Item is an immutable catalog entry. Inventory holds copies of these.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rarity     Rarity `json:"rarity"`
	Collection string `json:"collection"`
}
