// Package domain holds the storefront entities and the pure business
// rules that apply to them: cart totals, the order status machine,
// tracking timeline synthesis and payment instrument validation.
package domain

import "time"

// CartItem is one prospective purchase line. Title, author and image are
// denormalized from the catalog for display so the cart renders without a
// second lookup. Quantity is always >= 1; a line reaching zero is removed.
type CartItem struct {
	ID       string `json:"id"`
	BookID   string `json:"bookId"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Image    string `json:"image,omitempty"`
	Quantity int    `json:"quantity"`
	ISBN     string `json:"isbn,omitempty"`
	Category string `json:"category,omitempty"`
}

// Cart is the mutable purchase collection for one user. The monetary
// fields are derived from Items and must only ever be written through
// ApplyTotals, never edited independently.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	Subtotal  int64      `json:"subtotal"`
	Shipping  int64      `json:"shipping"`
	Tax       int64      `json:"tax"`
	Total     int64      `json:"total"`
	ItemCount int        `json:"itemCount"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewEmptyCart builds the lazily-materialized cart returned when the
// server has no cart for the user yet.
func NewEmptyCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// ApplyTotals recomputes every derived monetary field from Items. Called
// on every state replacement so cached totals are never stale.
func (c *Cart) ApplyTotals() {
	t := CalculateTotals(c.Items)
	c.Subtotal = t.Subtotal
	c.Shipping = t.Shipping
	c.Tax = t.Tax
	c.Total = t.Total
	c.ItemCount = t.ItemCount
}
