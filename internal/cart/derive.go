package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/coffeeshop/internal/domain"
)

// SortedView returns items ordered by criterion without touching the input.
// Ties keep their input order.
func SortedView(items []domain.CartLineItem, criterion domain.SortCriterion) []domain.CartLineItem {
	return domain.SortStable(items, criterion,
		func(i domain.CartLineItem) string { return i.Name },
		func(i domain.CartLineItem) decimal.Decimal { return i.Price },
	)
}

// SubtotalAmount sums price * quantity over items
func SubtotalAmount(items []domain.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Subtotal is SubtotalAmount rendered with two fractional digits
func Subtotal(items []domain.CartLineItem) string {
	return SubtotalAmount(items).StringFixed(2)
}
