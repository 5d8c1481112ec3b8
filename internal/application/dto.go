package application

import (
	"github.com/novellea/storefront-client/internal/domain"
)

type CreateOrderRequest struct {
	ShippingAddress domain.Address  `json:"shippingAddress" validate:"required"`
	BillingAddress  *domain.Address `json:"billingAddress,omitempty"`
	PaymentMethodID string          `json:"paymentMethodId" validate:"required"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required"`
	Notes           string          `json:"notes,omitempty"`
	CouponCode      string          `json:"couponCode,omitempty"`
}

type OrderQuery struct {
	Page          int
	Limit         int
	Status        domain.OrderStatus
	PaymentStatus domain.PaymentState
	DateFrom      string
	DateTo        string
	Search        string
}

type OrderPage struct {
	Orders     []domain.Order `json:"orders"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

type UpdateOrderStatusRequest struct {
	Status         domain.OrderStatus `json:"status"`
	TrackingNumber string             `json:"trackingNumber,omitempty"`
	Notes          string             `json:"notes,omitempty"`
}

type ReturnItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

type ReturnOrderRequest struct {
	Items  []ReturnItem `json:"items"`
	Reason string       `json:"reason"`
}

type NewPaymentMethod struct {
	Type      domain.PaymentMethodType `json:"type"`
	Name      string                   `json:"name"`
	Details   domain.MethodDetails     `json:"details"`
	IsDefault bool                     `json:"isDefault"`

	// CardNumber is validated client-side and never stored; the server
	// tokenizes it.
	CardNumber string `json:"cardNumber,omitempty"`
}

// RefundCommand requests a refund against a payment attempt. A nil
// Amount means a full refund.
type RefundCommand struct {
	Amount *int64 `json:"amount,omitempty"`
	Reason string `json:"reason"`
	Notes  string `json:"notes,omitempty"`
}
