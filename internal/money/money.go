// Package money formats amounts the way the panel shows them (Turkish lira).
package money

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Turkish)

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatTRY renders an amount with the lira symbol.
func FormatTRY(amount float64) string {
	return printer.Sprint(currency.Symbol(currency.TRY.Amount(Round2(amount))))
}
