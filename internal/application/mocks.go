package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/novellea/storefront-client/internal/domain"
)

// In-memory gateway fakes for service tests. Each method records its
// name in Calls and can be overridden through the corresponding Fn
// field; the default behavior emulates a well-behaved server.

type MockCartGateway struct {
	mu    sync.Mutex
	cart  *domain.Cart
	Calls []string

	FetchCartFn  func(ctx context.Context) (*domain.Cart, error)
	AddItemFn    func(ctx context.Context, bookID string, quantity int) (*domain.Cart, error)
	UpdateItemFn func(ctx context.Context, itemID string, quantity int) (*domain.Cart, error)
	RemoveItemFn func(ctx context.Context, itemID string) (*domain.Cart, error)
	ClearCartFn  func(ctx context.Context) error
	SyncCartFn   func(ctx context.Context, items []domain.CartItem) (*domain.Cart, error)
	CartCountFn  func(ctx context.Context) (int, error)
}

func NewMockCartGateway(seed *domain.Cart) *MockCartGateway {
	return &MockCartGateway{cart: seed}
}

func (m *MockCartGateway) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockCartGateway) snapshot() *domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *m.cart
	copied.Items = append([]domain.CartItem(nil), m.cart.Items...)
	copied.ApplyTotals()
	return &copied
}

func (m *MockCartGateway) FetchCart(ctx context.Context) (*domain.Cart, error) {
	m.record("FetchCart")
	if m.FetchCartFn != nil {
		return m.FetchCartFn(ctx)
	}
	if m.cart == nil {
		return nil, fmt.Errorf("%w: cart not found", domain.ErrNotFound)
	}
	return m.snapshot(), nil
}

func (m *MockCartGateway) AddItem(ctx context.Context, bookID string, quantity int) (*domain.Cart, error) {
	m.record("AddItem")
	if m.AddItemFn != nil {
		return m.AddItemFn(ctx, bookID, quantity)
	}

	m.mu.Lock()
	found := false
	for i := range m.cart.Items {
		if m.cart.Items[i].BookID == bookID {
			m.cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		m.cart.Items = append(m.cart.Items, domain.CartItem{
			ID:       "item-" + bookID,
			BookID:   bookID,
			Quantity: quantity,
		})
	}
	m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *MockCartGateway) UpdateItem(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	m.record("UpdateItem")
	if m.UpdateItemFn != nil {
		return m.UpdateItemFn(ctx, itemID, quantity)
	}

	m.mu.Lock()
	for i := range m.cart.Items {
		if m.cart.Items[i].ID == itemID {
			m.cart.Items[i].Quantity = quantity
			break
		}
	}
	m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *MockCartGateway) RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	m.record("RemoveItem")
	if m.RemoveItemFn != nil {
		return m.RemoveItemFn(ctx, itemID)
	}

	m.mu.Lock()
	kept := m.cart.Items[:0]
	for _, item := range m.cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	m.cart.Items = kept
	m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *MockCartGateway) ClearCart(ctx context.Context) error {
	m.record("ClearCart")
	if m.ClearCartFn != nil {
		return m.ClearCartFn(ctx)
	}
	m.mu.Lock()
	m.cart.Items = nil
	m.mu.Unlock()
	return nil
}

func (m *MockCartGateway) SyncCart(ctx context.Context, items []domain.CartItem) (*domain.Cart, error) {
	m.record("SyncCart")
	if m.SyncCartFn != nil {
		return m.SyncCartFn(ctx, items)
	}
	m.mu.Lock()
	m.cart.Items = append([]domain.CartItem(nil), items...)
	m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *MockCartGateway) CartCount(ctx context.Context) (int, error) {
	m.record("CartCount")
	if m.CartCountFn != nil {
		return m.CartCountFn(ctx)
	}
	count := 0
	m.mu.Lock()
	for _, item := range m.cart.Items {
		count += item.Quantity
	}
	m.mu.Unlock()
	return count, nil
}

type MockOrderGateway struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	Calls  []string

	CreateOrderFn        func(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	ListOrdersFn         func(ctx context.Context, query OrderQuery) (*OrderPage, error)
	GetOrderFn           func(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrderStatusFn  func(ctx context.Context, orderID string, req UpdateOrderStatusRequest) (*domain.Order, error)
	CancelOrderFn        func(ctx context.Context, orderID, reason string) (*domain.Order, error)
	ReturnOrderFn        func(ctx context.Context, orderID string, req ReturnOrderRequest) (*domain.Order, error)
	TrackOrderFn         func(ctx context.Context, orderID string) (*domain.OrderTracking, error)
	TrackOrderByNumberFn func(ctx context.Context, orderNumber string) (*domain.OrderTracking, error)
	DownloadInvoiceFn    func(ctx context.Context, orderID string) ([]byte, error)
	ReorderFn            func(ctx context.Context, orderID string) (*domain.Cart, error)
}

func NewMockOrderGateway(orders ...*domain.Order) *MockOrderGateway {
	m := &MockOrderGateway{orders: make(map[string]*domain.Order)}
	for _, order := range orders {
		m.orders[order.ID] = order
	}
	return m
}

func (m *MockOrderGateway) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockOrderGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	m.record("CreateOrder")
	if m.CreateOrderFn != nil {
		return m.CreateOrderFn(ctx, req)
	}
	return &domain.Order{ID: "o-new", OrderNumber: "NOV-1001", Status: domain.OrderPending}, nil
}

func (m *MockOrderGateway) ListOrders(ctx context.Context, query OrderQuery) (*OrderPage, error) {
	m.record("ListOrders")
	if m.ListOrdersFn != nil {
		return m.ListOrdersFn(ctx, query)
	}
	page := &OrderPage{Page: query.Page, Limit: query.Limit}
	m.mu.Lock()
	for _, order := range m.orders {
		page.Orders = append(page.Orders, *order)
	}
	m.mu.Unlock()
	page.Total = len(page.Orders)
	return page, nil
}

func (m *MockOrderGateway) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	m.record("GetOrder")
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if order, ok := m.orders[orderID]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
}

func (m *MockOrderGateway) UpdateOrderStatus(ctx context.Context, orderID string, req UpdateOrderStatusRequest) (*domain.Order, error) {
	m.record("UpdateOrderStatus")
	if m.UpdateOrderStatusFn != nil {
		return m.UpdateOrderStatusFn(ctx, orderID, req)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order := m.orders[orderID]
	order.Status = req.Status
	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	copied := *order
	return &copied, nil
}

func (m *MockOrderGateway) CancelOrder(ctx context.Context, orderID, reason string) (*domain.Order, error) {
	m.record("CancelOrder")
	if m.CancelOrderFn != nil {
		return m.CancelOrderFn(ctx, orderID, reason)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order := m.orders[orderID]
	order.Status = domain.OrderCancelled
	copied := *order
	return &copied, nil
}

func (m *MockOrderGateway) ReturnOrder(ctx context.Context, orderID string, req ReturnOrderRequest) (*domain.Order, error) {
	m.record("ReturnOrder")
	if m.ReturnOrderFn != nil {
		return m.ReturnOrderFn(ctx, orderID, req)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order := m.orders[orderID]
	order.Status = domain.OrderReturned
	copied := *order
	return &copied, nil
}

func (m *MockOrderGateway) TrackOrder(ctx context.Context, orderID string) (*domain.OrderTracking, error) {
	m.record("TrackOrder")
	if m.TrackOrderFn != nil {
		return m.TrackOrderFn(ctx, orderID)
	}
	order, err := m.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &domain.OrderTracking{Order: order}, nil
}

func (m *MockOrderGateway) TrackOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderTracking, error) {
	m.record("TrackOrderByNumber")
	if m.TrackOrderByNumberFn != nil {
		return m.TrackOrderByNumberFn(ctx, orderNumber)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.OrderNumber == orderNumber {
			copied := *order
			return &domain.OrderTracking{Order: &copied}, nil
		}
	}
	return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderNumber)
}

func (m *MockOrderGateway) DownloadInvoice(ctx context.Context, orderID string) ([]byte, error) {
	m.record("DownloadInvoice")
	if m.DownloadInvoiceFn != nil {
		return m.DownloadInvoiceFn(ctx, orderID)
	}
	return []byte("%PDF-1.4"), nil
}

func (m *MockOrderGateway) Reorder(ctx context.Context, orderID string) (*domain.Cart, error) {
	m.record("Reorder")
	if m.ReorderFn != nil {
		return m.ReorderFn(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order := m.orders[orderID]
	cart := domain.NewEmptyCart(order.UserID)
	for _, item := range order.Items {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:       item.ID,
			BookID:   item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return cart, nil
}

type MockPaymentGateway struct {
	mu    sync.Mutex
	Calls []string

	// IdempotencyKeys records the key of every initiate/refund call.
	IdempotencyKeys []string

	ListMethodsFn      func(ctx context.Context) ([]domain.PaymentMethod, error)
	AddMethodFn        func(ctx context.Context, method NewPaymentMethod) (*domain.PaymentMethod, error)
	RemoveMethodFn     func(ctx context.Context, methodID string) error
	SetDefaultMethodFn func(ctx context.Context, methodID string) (*domain.PaymentMethod, error)
	InitiatePaymentFn  func(ctx context.Context, req domain.PaymentRequest, idempotencyKey string) (*domain.PaymentResponse, error)
	PaymentStatusFn    func(ctx context.Context, paymentID string) (*domain.PaymentStatusInfo, error)
	ConfirmPaymentFn   func(ctx context.Context, paymentID string, confirmation map[string]any) (*domain.PaymentResponse, error)
	CancelPaymentFn    func(ctx context.Context, paymentID, reason string) (*domain.PaymentResponse, error)
	RefundFn           func(ctx context.Context, paymentID string, cmd RefundCommand, idempotencyKey string) (*domain.RefundResponse, error)
	RefundHistoryFn    func(ctx context.Context, paymentID string) ([]domain.RefundResponse, error)
	RefundStatusFn     func(ctx context.Context, refundID string) (*domain.RefundResponse, error)
}

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockPaymentGateway) ListMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	m.record("ListMethods")
	if m.ListMethodsFn != nil {
		return m.ListMethodsFn(ctx)
	}
	return nil, nil
}

func (m *MockPaymentGateway) AddMethod(ctx context.Context, method NewPaymentMethod) (*domain.PaymentMethod, error) {
	m.record("AddMethod")
	if m.AddMethodFn != nil {
		return m.AddMethodFn(ctx, method)
	}
	return &domain.PaymentMethod{ID: "pm-1", Type: method.Type, Name: method.Name}, nil
}

func (m *MockPaymentGateway) RemoveMethod(ctx context.Context, methodID string) error {
	m.record("RemoveMethod")
	if m.RemoveMethodFn != nil {
		return m.RemoveMethodFn(ctx, methodID)
	}
	return nil
}

func (m *MockPaymentGateway) SetDefaultMethod(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	m.record("SetDefaultMethod")
	if m.SetDefaultMethodFn != nil {
		return m.SetDefaultMethodFn(ctx, methodID)
	}
	return &domain.PaymentMethod{ID: methodID, IsDefault: true}, nil
}

func (m *MockPaymentGateway) InitiatePayment(ctx context.Context, req domain.PaymentRequest, idempotencyKey string) (*domain.PaymentResponse, error) {
	m.record("InitiatePayment")
	m.mu.Lock()
	m.IdempotencyKeys = append(m.IdempotencyKeys, idempotencyKey)
	m.mu.Unlock()
	if m.InitiatePaymentFn != nil {
		return m.InitiatePaymentFn(ctx, req, idempotencyKey)
	}
	return &domain.PaymentResponse{
		PaymentID:     "pay-1",
		OrderID:       req.OrderID,
		Status:        domain.PaymentPending,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
	}, nil
}

func (m *MockPaymentGateway) PaymentStatus(ctx context.Context, paymentID string) (*domain.PaymentStatusInfo, error) {
	m.record("PaymentStatus")
	if m.PaymentStatusFn != nil {
		return m.PaymentStatusFn(ctx, paymentID)
	}
	return &domain.PaymentStatusInfo{PaymentID: paymentID, Status: domain.PaymentPending}, nil
}

func (m *MockPaymentGateway) ConfirmPayment(ctx context.Context, paymentID string, confirmation map[string]any) (*domain.PaymentResponse, error) {
	m.record("ConfirmPayment")
	if m.ConfirmPaymentFn != nil {
		return m.ConfirmPaymentFn(ctx, paymentID, confirmation)
	}
	return &domain.PaymentResponse{PaymentID: paymentID, Status: domain.PaymentProcessing}, nil
}

func (m *MockPaymentGateway) CancelPayment(ctx context.Context, paymentID, reason string) (*domain.PaymentResponse, error) {
	m.record("CancelPayment")
	if m.CancelPaymentFn != nil {
		return m.CancelPaymentFn(ctx, paymentID, reason)
	}
	return &domain.PaymentResponse{PaymentID: paymentID, Status: domain.PaymentCancelled}, nil
}

func (m *MockPaymentGateway) Refund(ctx context.Context, paymentID string, cmd RefundCommand, idempotencyKey string) (*domain.RefundResponse, error) {
	m.record("Refund")
	m.mu.Lock()
	m.IdempotencyKeys = append(m.IdempotencyKeys, idempotencyKey)
	m.mu.Unlock()
	if m.RefundFn != nil {
		return m.RefundFn(ctx, paymentID, cmd, idempotencyKey)
	}
	amount := int64(0)
	if cmd.Amount != nil {
		amount = *cmd.Amount
	}
	return &domain.RefundResponse{
		RefundID:  "ref-1",
		PaymentID: paymentID,
		Amount:    amount,
		Status:    domain.RefundProcessing,
		Reason:    cmd.Reason,
	}, nil
}

func (m *MockPaymentGateway) RefundHistory(ctx context.Context, paymentID string) ([]domain.RefundResponse, error) {
	m.record("RefundHistory")
	if m.RefundHistoryFn != nil {
		return m.RefundHistoryFn(ctx, paymentID)
	}
	return nil, nil
}

func (m *MockPaymentGateway) RefundStatus(ctx context.Context, refundID string) (*domain.RefundResponse, error) {
	m.record("RefundStatus")
	if m.RefundStatusFn != nil {
		return m.RefundStatusFn(ctx, refundID)
	}
	return &domain.RefundResponse{RefundID: refundID, Status: domain.RefundProcessing}, nil
}
