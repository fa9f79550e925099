package output

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code used for all displayed amounts
const Currency = money.USD

// FormatCurrency formats an amount as US dollars, e.g. "$1,234.56"
func FormatCurrency(amount float64) string {
	cents := decimal.NewFromFloat(amount).Round(2).Shift(2)
	return money.New(cents.IntPart(), Currency).Display()
}

// FormatWholeCurrency formats an amount rounded to whole dollars, e.g. "$1,235"
func FormatWholeCurrency(amount float64) string {
	s := FormatCurrency(decimal.NewFromFloat(amount).Round(0).InexactFloat64())
	if n := len(s); n > 3 && s[n-3] == '.' {
		return s[:n-3]
	}
	return s
}

// FormatPercentage formats a value already expressed in percent, e.g. "12.34%"
func FormatPercentage(percent float64) string {
	return decimal.NewFromFloat(percent).StringFixed(2) + "%"
}

// FormatRate formats a fractional rate as a percentage, e.g. 0.07 -> "7.00%"
func FormatRate(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

// RoundCents rounds to two decimal places using decimal arithmetic
func RoundCents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// FixedString renders an amount with two decimals and no grouping
func FixedString(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
