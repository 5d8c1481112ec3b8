// Package application wires the storefront use cases: the cart manager,
// the order lifecycle manager and the payment orchestrator. Each talks
// to its microservice through a gateway interface implemented by the
// HTTP resource client.
package application

import (
	"context"

	"github.com/novellea/storefront-client/internal/domain"
)

type CartGateway interface {
	FetchCart(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, bookID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error)
	ClearCart(ctx context.Context) error
	SyncCart(ctx context.Context, items []domain.CartItem) (*domain.Cart, error)
	CartCount(ctx context.Context) (int, error)
}

type OrderGateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, query OrderQuery) (*OrderPage, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req UpdateOrderStatusRequest) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID, reason string) (*domain.Order, error)
	ReturnOrder(ctx context.Context, orderID string, req ReturnOrderRequest) (*domain.Order, error)
	TrackOrder(ctx context.Context, orderID string) (*domain.OrderTracking, error)
	TrackOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderTracking, error)
	DownloadInvoice(ctx context.Context, orderID string) ([]byte, error)
	Reorder(ctx context.Context, orderID string) (*domain.Cart, error)
}

type PaymentGateway interface {
	ListMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	AddMethod(ctx context.Context, method NewPaymentMethod) (*domain.PaymentMethod, error)
	RemoveMethod(ctx context.Context, methodID string) error
	SetDefaultMethod(ctx context.Context, methodID string) (*domain.PaymentMethod, error)
	InitiatePayment(ctx context.Context, req domain.PaymentRequest, idempotencyKey string) (*domain.PaymentResponse, error)
	PaymentStatus(ctx context.Context, paymentID string) (*domain.PaymentStatusInfo, error)
	ConfirmPayment(ctx context.Context, paymentID string, confirmation map[string]any) (*domain.PaymentResponse, error)
	CancelPayment(ctx context.Context, paymentID, reason string) (*domain.PaymentResponse, error)
	Refund(ctx context.Context, paymentID string, cmd RefundCommand, idempotencyKey string) (*domain.RefundResponse, error)
	RefundHistory(ctx context.Context, paymentID string) ([]domain.RefundResponse, error)
	RefundStatus(ctx context.Context, refundID string) (*domain.RefundResponse, error)
}

// Notifier surfaces outcome messages to the user. Transient failures are
// retry-eligible; validation failures carry a corrective message.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}
