package services

import (
	"github.com/shopspring/decimal"

	"amazona/internal/domain"
)

// PricedLine pairs an order line with the product row read inside the
// placement transaction. The price on that row is the snapshot the order
// item keeps; anything the caller sent is never consulted.
type PricedLine struct {
	Product domain.Product
	Qty     int
}

func (l PricedLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// OrderTotal sums the exact line totals. No per-line rounding; a total is
// only rounded once, at the charged amount.
func OrderTotal(lines []PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// ChargeAmountCents applies the flat payment policy
// (total + total*taxRate + shippingFee), rounds to 2 fractional digits,
// and converts to minor units for the provider.
func ChargeAmountCents(total, taxRate, shippingFee decimal.Decimal) int64 {
	charge := total.Add(total.Mul(taxRate)).Add(shippingFee).Round(2)
	return charge.Mul(decimal.NewFromInt(100)).IntPart()
}
