package domain

import "math"

// Amounts are in whole currency units (rupees).
const (
	// Orders strictly above this subtotal ship free.
	FreeShippingThreshold int64 = 500
	FlatShippingFee       int64 = 50
	TaxRate                     = 0.18
)

// Totals are the derived monetary fields of a cart or order.
type Totals struct {
	Subtotal  int64
	Shipping  int64
	Tax       int64
	Total     int64
	ItemCount int
}

// CalculateTotals derives subtotal, shipping, tax and grand total from a
// set of line items. Tax is computed on the subtotal only, rounded to the
// nearest unit. Deterministic and side-effect free; an empty item list
// yields all zeros.
func CalculateTotals(items []CartItem) Totals {
	if len(items) == 0 {
		return Totals{}
	}

	var t Totals
	for _, item := range items {
		t.Subtotal += item.Price * int64(item.Quantity)
		t.ItemCount += item.Quantity
	}

	if t.Subtotal <= FreeShippingThreshold {
		t.Shipping = FlatShippingFee
	}
	t.Tax = int64(math.Round(float64(t.Subtotal) * TaxRate))
	t.Total = t.Subtotal + t.Shipping + t.Tax
	return t
}
