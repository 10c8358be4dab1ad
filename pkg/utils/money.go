package utils

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// priceFormat groups thousands with a space and uses a decimal comma.
const priceFormat = "# ###,##"

var currencySymbols = map[string]string{
	"KZT": "₸",
	"RUB": "₽",
	"USD": "$",
	"EUR": "€",
}

// CurrencySymbol returns the symbol for an ISO currency code, or the code itself.
func CurrencySymbol(currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

// FormatPrice renders d in the storefront's price style, e.g. "1 900,00 ₸".
func FormatPrice(d decimal.Decimal, currency string) string {
	f, _ := d.Round(2).Float64()
	s := humanize.FormatFloat(priceFormat, f)
	if sym := CurrencySymbol(currency); sym != "" {
		s += " " + sym
	}
	return s
}

// FormatPercent renders a discount percentage such as "-15%".
func FormatPercent(d decimal.Decimal) string {
	return "-" + d.Round(2).String() + "%"
}
