package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders an amount as US dollars with grouping, e.g. "$1,234.50".
// Used for reminder emails and invoice documents.
func FormatMoney(amount float64) string {
	return moneyPrinter.Sprintf("$%.2f", amount)
}
