package utils

import (
	"fmt"
	"math"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatUSD renders an amount the way the apps display totals, e.g. "$270.00".
func FormatUSD(amount float64) string {
	if amount < 0 {
		return "-$" + FormatMoney(-amount)
	}
	return "$" + FormatMoney(amount)
}

// RoundMoney normalizes computed amounts to cent precision so repeated
// percent discounts do not accumulate float noise.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
