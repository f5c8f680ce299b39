package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyExponents lists the minor-unit exponent of the currencies we render
// specially. Anything else is shown with two decimals.
var currencyExponents = map[string]int32{
	"USD":  2,
	"EUR":  2,
	"GBP":  2,
	"USDC": 2,
	"USDT": 2,
	"JPY":  0,
	"KRW":  0,
}

const defaultExponent int32 = 2

// CurrencyExponent returns the number of minor-unit digits for code.
func CurrencyExponent(code string) int32 {
	if exp, ok := currencyExponents[strings.ToUpper(code)]; ok {
		return exp
	}
	return defaultExponent
}

// FormatAmount renders an amount held in the smallest unit as a major-unit string.
// Example: 1050 USD returns "10.50", 1050 JPY returns "1050".
func FormatAmount(amount int64, currencyCode string) string {
	exp := CurrencyExponent(currencyCode)
	return decimal.New(amount, -exp).StringFixed(exp)
}
