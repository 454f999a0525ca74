package handler

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

var (
	amountPrinter = message.NewPrinter(language.English)
	titleCaser    = cases.Title(language.English)
)

// FormattedBalances carries balances with thousands separators
type FormattedBalances struct {
	Silver string `json:"silver"`
	Gold   string `json:"gold"`
}

// formatAmount renders n with thousands separators, e.g. 5000 -> "5,000"
func formatAmount(n int64) string {
	return amountPrinter.Sprintf("%d", n)
}

func formatBalances(b domain.Balances) FormattedBalances {
	return FormattedBalances{
		Silver: formatAmount(b.Silver),
		Gold:   formatAmount(b.Gold),
	}
}

// rarityLabel turns "legendary" into "Legendary"
func rarityLabel(r domain.Rarity) string {
	return titleCaser.String(string(r))
}
