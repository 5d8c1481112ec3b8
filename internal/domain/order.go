package domain

import (
	"slices"
	"time"
)

// OrderStatus is the fulfilment state of an order. Transitions are
// append-only: an order never returns to an earlier state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderReturned   OrderStatus = "returned"
)

// PaymentState is the order-level payment status. It evolves
// independently of OrderStatus.
type PaymentState string

const (
	PaymentStatePending  PaymentState = "pending"
	PaymentStatePaid     PaymentState = "paid"
	PaymentStateFailed   PaymentState = "failed"
	PaymentStateRefunded PaymentState = "refunded"
)

// OrderItem is an immutable snapshot of a cart line taken at checkout.
// Catalog price changes after order creation never touch it.
type OrderItem struct {
	ID       string `json:"id"`
	BookID   string `json:"bookId"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
	ISBN     string `json:"isbn,omitempty"`
	Category string `json:"category,omitempty"`
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Country   string `json:"country"`
}

type Order struct {
	ID                string       `json:"id"`
	OrderNumber       string       `json:"orderNumber"`
	UserID            string       `json:"userId"`
	Status            OrderStatus  `json:"status"`
	Items             []OrderItem  `json:"items"`
	Subtotal          int64        `json:"subtotal"`
	Shipping          int64        `json:"shipping"`
	Tax               int64        `json:"tax"`
	Total             int64        `json:"total"`
	PaymentMethod     string       `json:"paymentMethod"`
	PaymentStatus     PaymentState `json:"paymentStatus"`
	PaymentID         string       `json:"paymentId,omitempty"`
	TransactionID     string       `json:"transactionId,omitempty"`
	ShippingAddress   Address      `json:"shippingAddress"`
	BillingAddress    Address      `json:"billingAddress"`
	TrackingNumber    string       `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time   `json:"estimatedDelivery,omitempty"`
	DeliveredAt       *time.Time   `json:"deliveredAt,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	Notes             string       `json:"notes,omitempty"`
}

// ReturnWindow is how long after delivery a return may be requested.
const ReturnWindow = 30 * 24 * time.Hour

// CanTransitionTo reports whether moving to target is a legal
// forward-only step of the lifecycle.
func (o *Order) CanTransitionTo(target OrderStatus) error {
	if err := o.Status.canAdvanceTo(target); err != nil {
		return err
	}
	return nil
}

func (s OrderStatus) canAdvanceTo(target OrderStatus) error {
	var allowed []OrderStatus
	switch s {
	case OrderPending:
		allowed = []OrderStatus{OrderConfirmed, OrderCancelled}
	case OrderConfirmed:
		allowed = []OrderStatus{OrderProcessing, OrderCancelled}
	case OrderProcessing:
		allowed = []OrderStatus{OrderShipped}
	case OrderShipped:
		allowed = []OrderStatus{OrderDelivered}
	case OrderDelivered:
		allowed = []OrderStatus{OrderReturned}
	case OrderCancelled, OrderReturned:
		// terminal
	}
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(s, target)
}

// IsTerminal reports whether no further fulfilment transition occurs.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderDelivered, OrderCancelled, OrderReturned:
		return true
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped:
		return false
	}
	return false
}

// CanCancel reports whether cancellation may be offered. The server stays
// authoritative; this gates the action client-side.
func (o *Order) CanCancel() bool {
	if o.PaymentStatus == PaymentStateRefunded {
		return false
	}
	return o.Status == OrderPending || o.Status == OrderConfirmed
}

// CanReturn reports whether a return may be offered at the given time:
// only delivered orders, within the return window of the delivery date.
func (o *Order) CanReturn(now time.Time) bool {
	if o.Status != OrderDelivered || o.DeliveredAt == nil {
		return false
	}
	return o.DeliveredAt.After(now.Add(-ReturnWindow))
}

// CanReorder reports whether the order's items may be placed into a fresh
// cart.
func (o *Order) CanReorder() bool {
	return o.Status != OrderCancelled && o.Status != OrderReturned
}

// Label returns the display name for a status. Exhaustive on purpose: a
// new status must be handled here before it compiles into the UI.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderConfirmed:
		return "Confirmed"
	case OrderProcessing:
		return "Processing"
	case OrderShipped:
		return "Shipped"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	case OrderReturned:
		return "Returned"
	}
	return string(s)
}

func (s PaymentState) Label() string {
	switch s {
	case PaymentStatePending:
		return "Pending"
	case PaymentStatePaid:
		return "Paid"
	case PaymentStateFailed:
		return "Failed"
	case PaymentStateRefunded:
		return "Refunded"
	}
	return string(s)
}
