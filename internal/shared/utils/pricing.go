package utils

import (
	"fmt"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "CA$",
	"AUD": "A$",
}

// FormatCents formats an amount in the smallest currency unit for display.
// Negative amounts (credits) keep their sign: FormatCents(-550, "USD") is "-$5.50".
func FormatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	symbol, ok := currencySymbols[currency]
	if !ok {
		return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}
