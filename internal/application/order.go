package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator"

	"github.com/novellea/storefront-client/internal/domain"
)

// OrderService drives the order lifecycle: checkout, status tracking,
// cancel/return/reorder and delivery estimation. The lifecycle
// preconditions are enforced here before any request is sent; the server
// remains the final authority and may still reject.
type OrderService struct {
	gateway  OrderGateway
	notifier Notifier
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

func NewOrderService(gateway OrderGateway, notifier Notifier, logger *slog.Logger) *OrderService {
	return &OrderService{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Create places an order from the cart snapshot. An empty cart is
// rejected with a validation error before any network call; the server
// snapshots item prices and titles so later catalog changes never touch
// the order.
func (s *OrderService) Create(ctx context.Context, cart *domain.Cart, req CreateOrderRequest) (*domain.Order, error) {
	if cart.IsEmpty() {
		return nil, domain.NewEmptyCartError()
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, &domain.DomainError{
			Code:    domain.ErrCodeMissingField,
			Message: "order request is incomplete",
			Err:     domain.ErrValidation,
		}
	}

	order, err := s.gateway.CreateOrder(ctx, req)
	if err != nil {
		s.notifier.Notify(ctx, "could not place your order")
		return nil, err
	}

	s.logger.Info("order created",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"total", order.Total,
	)
	return order, nil
}

func (s *OrderService) List(ctx context.Context, query OrderQuery) (*OrderPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}
	return s.gateway.ListOrders(ctx, query)
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.gateway.GetOrder(ctx, orderID)
}

// UpdateStatus advances an order along the lifecycle (admin surface).
// Backward transitions are refused locally: the lifecycle is append-only.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, req UpdateOrderStatusRequest) (*domain.Order, error) {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.CanTransitionTo(req.Status); err != nil {
		return nil, err
	}
	return s.gateway.UpdateOrderStatus(ctx, orderID, req)
}

// Cancel cancels an order. Permitted only while the order is pending or
// confirmed and its payment has not been refunded.
func (s *OrderService) Cancel(ctx context.Context, orderID, reason string) (*domain.Order, error) {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanCancel() {
		return nil, domain.NewNotCancellableError(order.Status)
	}

	if reason == "" {
		reason = "Customer requested cancellation"
	}

	cancelled, err := s.gateway.CancelOrder(ctx, orderID, reason)
	if err != nil {
		s.notifier.Notify(ctx, "could not cancel your order")
		return nil, err
	}
	return cancelled, nil
}

// Return requests a return for delivered items, within the return
// window of the delivery date.
func (s *OrderService) Return(ctx context.Context, orderID string, items []ReturnItem, reason string) (*domain.Order, error) {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanReturn(s.now()) {
		return nil, domain.NewReturnNotAllowedError("only delivered orders within 30 days can be returned")
	}
	if len(items) == 0 {
		return nil, domain.NewMissingFieldError("return items")
	}

	returned, err := s.gateway.ReturnOrder(ctx, orderID, ReturnOrderRequest{Items: items, Reason: reason})
	if err != nil {
		s.notifier.Notify(ctx, "could not process your return")
		return nil, err
	}
	return returned, nil
}

// Reorder places the order's items into a fresh cart at current catalog
// prices.
func (s *OrderService) Reorder(ctx context.Context, orderID string) (*domain.Cart, error) {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanReorder() {
		return nil, domain.NewNotReorderableError(order.Status)
	}

	cart, err := s.gateway.Reorder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	cart.ApplyTotals()
	return cart, nil
}

// Track returns the order with its milestone timeline. When the server
// has no events of its own the timeline is synthesized locally from the
// order's status and timestamps.
func (s *OrderService) Track(ctx context.Context, orderID string) (*domain.OrderTracking, error) {
	tracking, err := s.gateway.TrackOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return withSynthesizedEvents(tracking), nil
}

// TrackByNumber is Track keyed by the human-readable order number.
func (s *OrderService) TrackByNumber(ctx context.Context, orderNumber string) (*domain.OrderTracking, error) {
	tracking, err := s.gateway.TrackOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return withSynthesizedEvents(tracking), nil
}

// Invoice downloads the order invoice as raw bytes.
func (s *OrderService) Invoice(ctx context.Context, orderID string) ([]byte, error) {
	return s.gateway.DownloadInvoice(ctx, orderID)
}

// EstimateDelivery projects the delivery date from the order date and
// shipping tier, counting weekdays only.
func (s *OrderService) EstimateDelivery(order *domain.Order) time.Time {
	return domain.EstimateDelivery(order)
}

func withSynthesizedEvents(tracking *domain.OrderTracking) *domain.OrderTracking {
	if len(tracking.Tracking) == 0 && tracking.Order != nil {
		tracking.Tracking = domain.BuildTrackingEvents(tracking.Order)
	}
	return tracking
}
