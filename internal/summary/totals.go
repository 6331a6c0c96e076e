package summary

import (
	"github.com/angelmondragon/packfinderz-cart/internal/cart"
	"github.com/shopspring/decimal"
)

// TotalPrice sums quantity*price over lines with a positive quantity.
func TotalPrice(items []cart.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		q := item.QuantityOrZero()
		if q <= 0 {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(q))))
	}
	return total
}

// TotalItemCount sums the quantities of lines whose quantity is defined.
// Lines with an undefined quantity are left out of the sum.
func TotalItemCount(items []cart.Item) int {
	count := 0
	for _, item := range items {
		if item.Quantity == nil {
			continue
		}
		count += *item.Quantity
	}
	return count
}
