package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/novellea/storefront-client/internal/application"
	"github.com/novellea/storefront-client/internal/domain"
)

// OrderClient implements application.OrderGateway over the orders
// service endpoints.
type OrderClient struct {
	client *Client
}

func NewOrderClient(client *Client) application.OrderGateway {
	return &OrderClient{client: client}
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func (c *OrderClient) CreateOrder(ctx context.Context, req application.CreateOrderRequest) (*domain.Order, error) {
	order, err := do[application.CreateOrderRequest, domain.Order](c.client, ctx, http.MethodPost, "/orders", &req, "")
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) ListOrders(ctx context.Context, query application.OrderQuery) (*application.OrderPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.Limit))
	if query.Status != "" {
		params.Set("status", string(query.Status))
	}
	if query.PaymentStatus != "" {
		params.Set("paymentStatus", string(query.PaymentStatus))
	}
	if query.DateFrom != "" {
		params.Set("dateFrom", query.DateFrom)
	}
	if query.DateTo != "" {
		params.Set("dateTo", query.DateTo)
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}

	page, err := do[any, application.OrderPage](c.client, ctx, http.MethodGet, "/orders?"+params.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *OrderClient) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	path := fmt.Sprintf("/orders/%s", orderID)
	order, err := do[any, domain.Order](c.client, ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) UpdateOrderStatus(ctx context.Context, orderID string, req application.UpdateOrderStatusRequest) (*domain.Order, error) {
	path := fmt.Sprintf("/orders/%s/status", orderID)
	order, err := do[application.UpdateOrderStatusRequest, domain.Order](c.client, ctx, http.MethodPut, path, &req, "")
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) CancelOrder(ctx context.Context, orderID, reason string) (*domain.Order, error) {
	path := fmt.Sprintf("/orders/%s/cancel", orderID)
	req := cancelOrderRequest{Reason: reason}
	order, err := do[cancelOrderRequest, domain.Order](c.client, ctx, http.MethodPost, path, &req, "")
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) ReturnOrder(ctx context.Context, orderID string, req application.ReturnOrderRequest) (*domain.Order, error) {
	path := fmt.Sprintf("/orders/%s/return", orderID)
	order, err := do[application.ReturnOrderRequest, domain.Order](c.client, ctx, http.MethodPost, path, &req, "")
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) TrackOrder(ctx context.Context, orderID string) (*domain.OrderTracking, error) {
	path := fmt.Sprintf("/orders/%s/track", orderID)
	tracking, err := do[any, domain.OrderTracking](c.client, ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return &tracking, nil
}

func (c *OrderClient) TrackOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderTracking, error) {
	path := fmt.Sprintf("/orders/track/%s", orderNumber)
	tracking, err := do[any, domain.OrderTracking](c.client, ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return &tracking, nil
}

func (c *OrderClient) DownloadInvoice(ctx context.Context, orderID string) ([]byte, error) {
	return c.client.doRaw(ctx, fmt.Sprintf("/orders/%s/invoice", orderID))
}

func (c *OrderClient) Reorder(ctx context.Context, orderID string) (*domain.Cart, error) {
	path := fmt.Sprintf("/orders/%s/reorder", orderID)
	cart, err := do[any, domain.Cart](c.client, ctx, http.MethodPost, path, nil, "")
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
