package domain

// Currency identifies one of the two balances
type Currency string

const (
	CurrencySilver Currency = "silver"
	CurrencyGold   Currency = "gold"
)

// IsValid reports whether c is a known currency
func (c Currency) IsValid() bool {
	return c == CurrencySilver || c == CurrencyGold
}

// Drop is one weighted entry of a case. Order matters: the last drop
// absorbs any draw beyond the total weight.
type Drop struct {
	Item   Item    `json:"item"`
	Weight float64 `json:"weight"`
}

// CaseDefinition is a purchasable bundle of weighted outcomes
type CaseDefinition struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Currency Currency `json:"currency"`
	Drops    []Drop   `json:"drops"`
}

// TotalWeight sums the configured drop weights
func (c CaseDefinition) TotalWeight() float64 {
	var total float64
	for _, d := range c.Drops {
		total += d.Weight
	}
	return total
}
