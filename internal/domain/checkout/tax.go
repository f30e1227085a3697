// internal/domain/checkout/tax.go
package checkout

import (
	"math"
)

// TaxCents returns the VAT amount for a subtotal in integer cents. Rounding
// is to the nearest cent, half away from zero; subtotals are never negative
// here, so this is plain round-half-up.
func TaxCents(subtotalCents, vatPercent int64) int64 {
	return int64(math.Round(float64(subtotalCents) * float64(vatPercent) / 100))
}

// TotalWithTax returns the VAT amount and the tax-inclusive total
func TotalWithTax(subtotalCents, vatPercent int64) (taxCents, totalCents int64) {
	taxCents = TaxCents(subtotalCents, vatPercent)
	return taxCents, subtotalCents + taxCents
}
