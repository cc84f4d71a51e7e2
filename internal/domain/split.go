package domain

import "github.com/charlesegbo631-code/watchme/internal/money"

// ComputeSplit sums line totals and supplier cost over the cart and derives
// the merchant profit, all in minor units. It only computes: rejecting an
// empty cart or a negative profit before any gateway call is the checkout
// orchestration's job, not the calculator's.
func ComputeSplit(items []CartItem) Split {
	var s Split
	for _, it := range items {
		qty := int64(it.Quantity)
		s.Total += money.ToMinorUnits(it.Price) * qty
		s.SupplierShare += money.ToMinorUnits(it.SupplierCost) * qty
	}
	s.Profit = s.Total - s.SupplierShare
	return s
}
